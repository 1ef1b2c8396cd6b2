package s3_test

import (
	"testing"

	"github.com/ymjo140/rendezvous-merchant-sub000/config"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/otel/mocks"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/s3"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "seating"
	cfg.External.S3.PublicDomain = "https://cdn.bistro.test/"
	cfg.External.S3.APIEndpoint = "https://s3.bistro.test"
	cfg.External.S3.AccessKeyID = "key"
	cfg.External.S3.SecretAccessKey = "secret"

	svc := s3.New(cfg, mocks.NewOtel())

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "public domain", url: "https://cdn.bistro.test/stores/s-1/booth.png", want: "stores/s-1/booth.png"},
		{name: "api endpoint", url: "https://s3.bistro.test/seating/stores/s-1/bar.webp", want: "stores/s-1/bar.webp"},
		{name: "foreign host", url: "https://example.com/booth.png", want: ""},
		{name: "bare prefix", url: "https://cdn.bistro.test/", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.ObjectKeyFromURL(tt.url))
		})
	}
}
