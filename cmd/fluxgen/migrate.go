package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/BaSui01/fluxgen/internal/migration"
)

// =============================================================================
// 🗄️ 数据库迁移命令
// =============================================================================

const migrateUsage = `Usage:
  fluxgen migrate <subcommand> [--config <path>] [--driver <driver>]

Subcommands:
  up               Apply all pending migrations
  down [--all]     Roll back the last migration (or all of them)
  steps <n>        Apply n migrations, or roll back when n is negative
  goto <version>   Migrate to a specific version
  force <version>  Set the version without running SQL (clears dirty state)
  status           Show every migration and whether it is applied
  version          Show the current version
  info             Show a summary`

// runMigrate 执行 migrate 子命令。位置参数（版本号、步数）放在选项之前。
func runMigrate(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		fmt.Println(migrateUsage)
		return nil
	}
	sub, rest := args[0], args[1:]

	var pos string
	switch sub {
	case "steps", "goto", "force":
		if len(rest) == 0 {
			return fmt.Errorf("usage: fluxgen migrate %s <n>", sub)
		}
		pos, rest = rest[0], rest[1:]
	}

	fs := flag.NewFlagSet("migrate "+sub, flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config file")
	driver := fs.String("driver", "", "Database driver override (postgres, mysql, sqlite)")
	all := fs.Bool("all", false, "With down: roll back every migration")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *driver != "" {
		cfg.Database.Driver = *driver
	}

	logger, _ := initLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	m, err := migration.NewMigratorFromConfig(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Warn("close migrator failed", zap.Error(err))
		}
	}()

	cli := migration.NewCLI(m)
	ctx := context.Background()

	switch sub {
	case "up":
		return cli.RunUp(ctx)
	case "down":
		if *all {
			return cli.RunDownAll(ctx)
		}
		return cli.RunDown(ctx)
	case "steps":
		n, err := strconv.Atoi(pos)
		if err != nil {
			return fmt.Errorf("invalid step count %q", pos)
		}
		return cli.RunSteps(ctx, n)
	case "goto":
		v, err := strconv.ParseUint(pos, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q", pos)
		}
		return cli.RunGoto(ctx, uint(v))
	case "force":
		v, err := strconv.Atoi(pos)
		if err != nil {
			return fmt.Errorf("invalid version %q", pos)
		}
		return cli.RunForce(ctx, v)
	case "status":
		return cli.RunStatus(ctx)
	case "version":
		return cli.RunVersion(ctx)
	case "info":
		return cli.RunInfo(ctx)
	default:
		return errors.New("unknown migrate subcommand: " + sub + "\n\n" + migrateUsage)
	}
}
