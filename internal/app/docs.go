package app

import (
	"github.com/garage-admin/garage/internal/apidoc"
	"github.com/garage-admin/garage/internal/auth"
	"github.com/garage-admin/garage/internal/garage/brands"
	"github.com/garage-admin/garage/internal/garage/clients"
	"github.com/garage-admin/garage/internal/garage/services"
	"github.com/garage-admin/garage/internal/garage/vehicles"
	"github.com/garage-admin/garage/internal/garage/vehicletypes"
	"github.com/garage-admin/garage/internal/users"
)

// Version is reported in the API document.
const Version = "1.0.0"

// NewDocument describes every route the router mounts.
func NewDocument(cfg *Config) *apidoc.Document {
	pageSize := 10
	if cfg != nil && cfg.PageSize > 0 {
		pageSize = cfg.PageSize
	}
	doc := apidoc.NewDocument(apidoc.Info{
		Title:       "Garage API",
		Version:     Version,
		Description: "Administration API for a vehicle repair garage.",
	})
	doc.AddEndpoints(auth.Endpoints()...)
	doc.AddSchemas(auth.Schemas()...)
	for _, res := range []struct {
		doc     apidoc.Resource
		schemas []apidoc.Schema
	}{
		{users.Doc(pageSize), users.Schemas()},
		{clients.Doc(pageSize), clients.Schemas()},
		{brands.Doc(pageSize), brands.Schemas()},
		{vehicletypes.Doc(pageSize), vehicletypes.Schemas()},
		{vehicles.Doc(pageSize), vehicles.Schemas()},
		{services.Doc(pageSize), services.Schemas()},
	} {
		doc.AddResource(res.doc)
		doc.AddSchemas(res.schemas...)
	}
	return doc
}
