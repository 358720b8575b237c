// Copyright 2023 Planet Labs PBC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/azavea/tilertwo/cmd/tilertwo/command"
	"github.com/azavea/tilertwo/internal/tools"
	"github.com/azavea/tilertwo/internal/transfer"
	log "github.com/sirupsen/logrus"
)

var (
	version = "development"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	registry, err := transfer.Default(http.DefaultClient)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	options := append(command.Options(),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.BindTo(&tools.ExecRunner{}, (*tools.Runner)(nil)),
		kong.Bind(registry, &command.CLI.Globals, &command.VersionInfo{
			Version: version,
			Commit:  commit,
			Date:    date,
		}),
	)
	cli := kong.Parse(&command.CLI, options...)

	command.CLI.ConfigureLogging()
	err = cli.Run(cli)
	cli.FatalIfErrorf(err)
}
