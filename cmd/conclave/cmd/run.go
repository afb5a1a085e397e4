package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	ghandlers "github.com/gorilla/handlers"
	logging "github.com/inconshreveable/log15"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"conclave.io/conclave/lib/cohort"
	"conclave.io/conclave/lib/common"
	"conclave.io/conclave/lib/election"
	"conclave.io/conclave/lib/metrics"
	"conclave.io/conclave/lib/network"
	"conclave.io/conclave/lib/network/api"
	"conclave.io/conclave/lib/network/api/resource"
	"conclave.io/conclave/lib/runner"
	"conclave.io/conclave/lib/storage"
	"conclave.io/conclave/lib/tally"

	cmdcommon "conclave.io/conclave/cmd/conclave/common"
)

const defaultBind string = "localhost:12345"
const defaultLogLevel logging.Lvl = logging.LvlInfo
const defaultTickInterval string = "10s"
const powerCacheSize int = 10000

var (
	flagGenesisPath  string = common.GetENVValue("CONCLAVE_GENESIS", "conclave.yml")
	flagBind         string = common.GetENVValue("CONCLAVE_BIND", defaultBind)
	flagLogLevel     string = common.GetENVValue("CONCLAVE_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput    string = common.GetENVValue("CONCLAVE_LOG_OUTPUT", "")
	flagVerbose      bool   = common.GetENVValue("CONCLAVE_VERBOSE", "0") == "1"
	flagTickInterval string = common.GetENVValue("CONCLAVE_TICK_INTERVAL", defaultTickInterval)
	flagBootstrap    bool

	flagStorageConfigString string
)

var (
	runCmd *cobra.Command

	genesisConfig runner.GenesisConfig
	electionConf  common.Config
	storageConfig *storage.Config
	tickInterval  time.Duration
	logLevel      logging.Lvl
	log           logging.Logger
)

func init() {
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the conclave election coordinator",
		Run: func(c *cobra.Command, args []string) {
			parseFlagsRun()

			if flagBootstrap {
				flagName, err := MakeGenesis(flagGenesisPath, flagStorageConfigString)
				if len(flagName) != 0 || err != nil {
					cmdcommon.PrintFlagsError(c, flagName, err)
				}
			}

			runServer()
		},
	}

	var currentDirectory string
	var err error
	if currentDirectory, err = os.Getwd(); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--storage", err)
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--storage", err)
	}
	flagStorageConfigString = common.GetENVValue("CONCLAVE_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	runCmd.Flags().StringVar(&flagGenesisPath, "genesis", flagGenesisPath, "genesis/config file")
	runCmd.Flags().BoolVar(&flagBootstrap, "bootstrap", flagBootstrap, "apply the genesis file before starting")
	runCmd.Flags().StringVar(&flagBind, "bind", flagBind, "address to listen on")
	runCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	runCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	runCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	runCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	runCmd.Flags().StringVar(&flagTickInterval, "tick-interval", flagTickInterval, "scheduling pass interval")

	rootCmd.AddCommand(runCmd)
}

func parseFlagsRun() {
	var err error

	if genesisConfig, err = runner.LoadGenesisConfig(flagGenesisPath); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--genesis", err)
	}
	if electionConf, err = genesisConfig.Config(); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--genesis", err)
	}

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--storage", err)
	}

	if tickInterval, err = time.ParseDuration(flagTickInterval); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--tick-interval", err)
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--log-level", err)
	}

	logHandler := logging.StdoutHandler
	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, common.JsonFormatEx(false, true)); err != nil {
			cmdcommon.PrintFlagsError(runCmd, "--log-output", err)
		}
	}
	logHandler = logging.CallerFileHandler(logHandler)

	log = logging.New("module", "main")
	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	election.SetLogging(logLevel, logHandler)
	tally.SetLogging(logLevel, logHandler)
	runner.SetLogging(logLevel, logHandler)
	network.SetLogging(logLevel, logHandler)

	log.Info("Starting conclave")
	log.Debug("parsed flags:",
		"\n\tgenesis", flagGenesisPath,
		"\n\tbind", flagBind,
		"\n\tstorage", flagStorageConfigString,
		"\n\tlog-level", flagLogLevel,
		"\n\tlog-output", flagLogOutput,
		"\n\ttick-interval", flagTickInterval,
	)
}

func runServer() {
	st := &storage.LevelDBBackend{}
	if err := st.Init(storageConfig); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--storage", err)
	}
	defer st.Close()

	metrics.InitPrometheusMetrics()
	metrics.SetVersion()

	store := cohort.NewStore(st)
	sink := election.NewCohortRotator(store)
	clock := common.SystemClock{}

	power, err := election.NewCachingPowerSource(election.NewStoragePowerSource(st), powerCacheSize)
	if err != nil {
		cmdcommon.PrintError(runCmd, err)
	}

	engine, err := tally.NewEngine(st, clock, electionConf, power, sink)
	if err != nil {
		cmdcommon.PrintError(runCmd, err)
	}

	ctl, err := election.NewController(st, clock, electionConf, store, engine, sink)
	if err != nil {
		cmdcommon.PrintError(runCmd, err)
	}

	electionRunner := runner.NewRunner(st, clock, ctl, engine, tickInterval)

	server := network.NewServer(flagBind)
	server.AddMiddleware(
		network.RecoverMiddleware(log, flagVerbose),
		network.RateLimitMiddleware(log, electionConf.RateLimitRuleAPI),
		network.MetricsMiddleware(),
	)

	apiHandler := api.NewNetworkHandlerAPI(st, clock, resource.APIPrefix+resource.APIVersionV1)
	server.AddHandler(apiHandler.HandlerURLPattern(api.GetCycleHandlerPattern), apiHandler.GetCycleHandler).Methods("GET")
	server.AddHandler(apiHandler.HandlerURLPattern(api.GetCycleNomineesHandlerPattern), apiHandler.GetCycleNomineesHandler).Methods("GET")
	server.AddHandler(apiHandler.HandlerURLPattern(api.GetCycleTallyHandlerPattern), apiHandler.GetCycleTallyHandler).Methods("GET")
	server.AddHandler(apiHandler.HandlerURLPattern(api.GetCohortHandlerPattern), apiHandler.GetCohortHandler).Methods("GET")
	server.AddHandler(apiHandler.HandlerURLPattern(api.GetRolesHandlerPattern), apiHandler.GetRolesHandler).Methods("GET")
	server.AddHandler(network.UrlPathPrefixMetric, promhttp.Handler().ServeHTTP).Methods("GET")

	{ // CORS + request logging around the router
		allowedOrigins := ghandlers.AllowedOrigins([]string{"*"})
		allowedMethods := ghandlers.AllowedMethods([]string{"GET"})
		allowedHeaders := ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"})

		handler := ghandlers.CORS(allowedOrigins, allowedMethods, allowedHeaders)(server.Router())
		server.SetHandler(ghandlers.CombinedLoggingHandler(os.Stdout, handler))
	}

	var g run.Group
	{
		g.Add(func() error {
			return server.Start()
		}, func(error) {
			server.Stop()
		})
	}
	{
		g.Add(func() error {
			return electionRunner.Start()
		}, func(error) {
			electionRunner.Stop()
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return cmdcommon.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
