// Package server provides the HTTP API of the portfolio reconciler.
//
// The architecture follows the pattern: CLI → App → Server → Router → Handlers.
//
// Usage:
//
//	cfg := server.DefaultConfig()
//	cfg.Port = 8080
//
//	srv, err := server.New(app, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	srv.Start() // Start the live search hub
//	http.ListenAndServe(cfg.Addr(), srv.Handler())
package server
