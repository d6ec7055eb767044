package app

import (
	"log"

	"minesight/internal/gateway/config"
	"minesight/internal/gateway/repository/document"
)

// chooseDocumentStore prefers S3 when the config is complete and falls
// back to the in-memory store otherwise. The fallback is fine for
// development but loses uploads on restart, so it gets logged.
func chooseDocumentStore(cfg *config.Config) document.Store {
	if cfg.Document.CanUseS3() {
		s3Store, err := document.NewS3Store(document.S3Config{
			Endpoint:  cfg.Document.Endpoint,
			Region:    cfg.Document.Region,
			AccessKey: cfg.Document.AccessKey,
			SecretKey: cfg.Document.SecretKey,
			Bucket:    cfg.Document.Bucket,
			UseSSL:    cfg.Document.UseSSL,
		})
		if err == nil {
			log.Printf("document store: s3 bucket=%s endpoint=%s", cfg.Document.Bucket, cfg.Document.Endpoint)
			return s3Store
		}
		log.Printf("document store: s3 init failed, using in-memory fallback: %v", err)
	} else if cfg.Document.Enabled {
		log.Printf("document store: using in-memory fallback (s3 config incomplete)")
	}
	return document.NewMemoryStore()
}
