// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package webhooks

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/moov-io/banklink/internal/route"
	"github.com/moov-io/banklink/pkg/banklink"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
)

// AddRoutes mounts POST /webhooks/{provider}. The handler stays thin: pick
// the signature header, verify, parse, respond. A failed verification is a
// 401, never an error response body that would leak why.
func AddRoutes(logger log.Logger, r *mux.Router, verifiers map[banklink.Provider]*Verifier) {
	r.Methods("POST").Path("/webhooks/{provider}").HandlerFunc(receiveEvent(logger, verifiers))
}

func receiveEvent(logger log.Logger, verifiers map[banklink.Provider]*Verifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := route.NewResponder(logger, w, r)

		provider, ok := banklink.ParseProvider(route.ReadPathID("provider", r))
		if !ok {
			resp.Respond(func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusNotFound)
			})
			return
		}
		verifier, ok := verifiers[provider]
		if !ok {
			resp.Respond(func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusNotFound)
			})
			return
		}

		body, err := ioutil.ReadAll(r.Body)
		if err != nil {
			resp.Problem(err)
			return
		}
		defer r.Body.Close()

		if !verifier.Verify(SignatureFromRequest(r), body) {
			resp.Log("webhooks", "signature verification failed", "provider", provider)
			resp.Respond(func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusUnauthorized)
			})
			return
		}

		event, err := verifier.Parse(body)
		if err != nil {
			resp.Problem(err)
			return
		}
		resp.Log("webhooks", "received event", "provider", provider, "type", event.Type, "eventID", event.ID)

		resp.Respond(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(event)
		})
	}
}
