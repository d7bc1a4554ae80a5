package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/expertmaker/internal/app"
	"github.com/abhisek/expertmaker/internal/studio"
)

// runApp opens the store, builds the study service, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	svc, closeFn, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	return app.Run(svc)
}

func runNoteEditor(svc *studio.Service) error {
	return app.RunNoteEditor(svc)
}
