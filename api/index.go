package handler

import (
	"net/http"
	"sync"

	"github.com/ymjo140/rendezvous-merchant-sub000/config"
	"github.com/ymjo140/rendezvous-merchant-sub000/di"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/logger"

	"github.com/rs/zerolog/log"
)

// app is built once per warm instance and reused across invocations.
var app = sync.OnceValue(func() http.Handler {
	logger.InitLogger()

	cfg := config.Get()
	logger.Configure(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Refusing to start")
	}

	return di.InitializeService().Adaptor()
})

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	app().ServeHTTP(w, r)
}
