package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/log"
)

type command struct {
	usage string
	run   func(c ctx.Ctx, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"list":   {usage: "list [--keyword k] [--page n] [view flags]", run: runList},
		"search": {usage: "search [query] [--category c] [--condition c] [view flags]", run: runSearch},
		"show":   {usage: "show <listingId>", run: runShow},
		"login":  {usage: "login --email e --password p", run: runLogin},
		"create": {usage: "create --title t --description d --price p --category c --condition c --location l --image file...", run: runCreate},
		"buy":    {usage: "buy <listingId> --address a --city c --postal-code p --country c", run: runBuy},
		"watch":  {usage: "watch", run: runWatch},
	}
}

func main() {
	global := pflag.NewFlagSet("p2pmarket", pflag.ExitOnError)
	configFile := global.String("config", "infra/configs/config.yaml", "config file path")
	envFile := global.String("env", ".env", "file holding PRIVATE_KEY and API_TOKEN")
	global.SetInterspersed(false)
	global.Usage = func() { usage(global) }
	_ = global.Parse(os.Args[1:])

	if err := loadConfig(*configFile, *envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	args := global.Args()
	if len(args) == 0 {
		usage(global)
		os.Exit(2)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		usage(global)
		os.Exit(2)
	}

	c, cancel := ctx.WithCancel(ctx.Background())
	defer cancel()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	c = ctx.WithFields(c, log.Fields{"command": args[0]})
	if err := cmd.run(c, args[1:]); err != nil {
		c.WithField("err", err).Debug("command failed")
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig(configFile, envFile string) error {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigFile(configFile)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("cli.logLevel", "warn")
	viper.SetDefault("api.url", "http://localhost:9090")
	_ = viper.BindEnv("wallet.privateKey", "PRIVATE_KEY")
	_ = viper.BindEnv("api.token", "API_TOKEN")
	if err := viper.ReadInConfig(); err != nil {
		return err
	}
	return log.SetLevel(viper.GetString("cli.logLevel"))
}

func usage(fs *pflag.FlagSet) {
	fmt.Fprintln(os.Stderr, "usage: p2pmarket [--config file] [--env file] <command> [args]")
	fmt.Fprintln(os.Stderr, "\ncommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(os.Stderr, "  "+commands[name].usage)
	}
	fmt.Fprintln(os.Stderr, "\nview flags: --sort key --min price --max price --filter text --group")
	fmt.Fprintln(os.Stderr, "\nglobal flags:")
	fs.PrintDefaults()
}
