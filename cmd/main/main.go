package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/shiplog/internal/app"
	"github.com/maxbolgarin/shiplog/internal/service"
)

var (
	Version, Branch, Commit, BuildDate string
)

var (
	configPath = kingpin.Flag("config", "path to config file").Short('c').String()

	generateCmd     = kingpin.Command("generate", "generate a changelog for a commit range")
	generateProject = generateCmd.Flag("project", "project ID, 'group/project' or 'owner/repo'").Required().String()
	generateFrom    = generateCmd.Flag("from", "range start (exclusive), a tag or SHA").Required().String()
	generateTo      = generateCmd.Flag("to", "range end, a tag or SHA").Required().String()
	generateRelease = generateCmd.Flag("release", "create this release version and tag tickets with it").String()
	generatePost    = generateCmd.Flag("post", "post the changelog to the chat channel").Bool()

	serveCmd = kingpin.Command("serve", "run the webhook server and generate on tag pushes")
)

func main() {
	command := kingpin.Parse()

	var err error
	ctx := contem.New(contem.WithLogger(logze.DefaultPtr()), contem.Exit(&err))
	defer ctx.Shutdown()

	err = run(ctx, command)
	if err != nil {
		logze.DefaultPtr().Error("cannot run", "error", err)
	}
}

func run(ctx contem.Context, command string) error {
	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		return erro.Wrap(err, "load config")
	}
	logze.Init(logze.C().WithConsole().WithLevel(logze.LevelInfo))

	shiplog, err := app.New(ctx, cfg)
	if err != nil {
		return erro.Wrap(err, "new app")
	}

	switch command {
	case generateCmd.FullCommand():
		result, err := shiplog.Generate(ctx, service.Request{
			ProjectID: *generateProject,
			From:      *generateFrom,
			To:        *generateTo,
			Release:   *generateRelease,
			Post:      *generatePost,
		})
		if err != nil {
			return erro.Wrap(err, "generate changelog")
		}
		fmt.Println(result.Text)

	case serveCmd.FullCommand():
		if err := shiplog.StartServer(ctx); err != nil {
			return erro.Wrap(err, "start server")
		}
		<-ctx.Done()
	}

	return nil
}
