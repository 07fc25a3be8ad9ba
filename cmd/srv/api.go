package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	server.loadConfig(cctx)
	server.loadLogger()
	server.loadEndpoint()
	server.loadDatabase()
	server.loadRedis()
	server.loadStorage()
	server.loadRepos()
	server.loadDomains()
	server.loadRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.configs.ApiServer.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: c.Handler(s.router.Handler()),
	}

	log.Printf("Starting server on port: %s\n", s.configs.ApiServer.Port)
	if s.configs.ApiServer.Cert != "" && s.configs.ApiServer.Key != "" {
		if err := s.server.ListenAndServeTLS(
			s.configs.ApiServer.Cert, s.configs.ApiServer.Key); err != nil {
			panic(err)
		}
	} else {
		if err := s.server.ListenAndServe(); err != nil {
			panic(err)
		}
	}

	log.Printf("server stop")
	return nil
}
