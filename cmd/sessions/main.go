package main

import (
	"context"
	"flag"
	"os"

	sessionscmd "github.com/indie-hain/console/internal/cmd/sessions"
	"github.com/indie-hain/console/internal/platform/config"
)

func main() {
	cfg, err := sessionscmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := sessionscmd.Run(context.Background(), cfg, os.Stdout); err != nil {
		config.Exitf("sessions: %v", err)
	}
}
