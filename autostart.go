package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
)

// setupAutostart reconciles the login-item registration with the configured
// setting. Already matching state is left untouched.
func setupAutostart(enable bool) error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}
	if execPath, err = filepath.EvalSymlinks(execPath); err != nil {
		return fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	app := &autostart.App{
		Name:        "zencare-companion",
		DisplayName: "ZenCare Companion",
		Exec:        []string{execPath},
	}

	if enable == app.IsEnabled() {
		return nil
	}

	if enable {
		if err := app.Enable(); err != nil {
			return fmt.Errorf("failed to enable autostart: %w", err)
		}
	} else {
		if err := app.Disable(); err != nil {
			return fmt.Errorf("failed to disable autostart: %w", err)
		}
	}

	log.Printf("Autostart set to %v", enable)
	return nil
}
