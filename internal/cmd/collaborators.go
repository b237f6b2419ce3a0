package cmd

import (
	"github.com/Shopify/js-uploader/internal/executor"
	"github.com/Shopify/js-uploader/internal/purge"
	"github.com/Shopify/js-uploader/internal/uploader"
)

// Collaborator factories used by the commands. Tests replace them.
var (
	newPurger = func() uploader.Purger {
		return purge.NewClient(purge.WithLogger(log.WithName("http")))
	}
	newRunner = func() uploader.Runner {
		return executor.NewShell("")
	}
)
