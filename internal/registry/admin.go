// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/json"
	"net/http"

	"github.com/moov-io/base/admin"
)

// RegisterRoutes mounts read-only debug routes on the admin server:
//
//	GET /providers            - the registered provider tags
//	GET /providers/resolve    - dry-run a resolution (provider, currency,
//	                            region query params)
func (r *Registry) RegisterRoutes(svc *admin.Server) {
	svc.AddHandler("/providers", r.listProviders)
	svc.AddHandler("/providers/resolve", r.dryRunResolve)
}

func (r *Registry) listProviders(w http.ResponseWriter, req *http.Request) {
	if req.Method != "GET" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var out []string
	for _, p := range r.order {
		out = append(out, p.String())
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(map[string]any{
		"providers": out,
		"default":   r.defaultProvider.String(),
	})
}

func (r *Registry) dryRunResolve(w http.ResponseWriter, req *http.Request) {
	if req.Method != "GET" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	q := req.URL.Query()
	adapter, err := r.Resolve(Resolution{
		Provider: q.Get("provider"),
		Currency: q.Get("currency"),
		Region:   q.Get("region"),
	})
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"provider": adapter.Provider().String()})
}
