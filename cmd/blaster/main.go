package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app        = kingpin.New("blaster", "Handheld blaster prop firmware")
	debug      = app.Flag("debug", "Turn on debug logging.").Bool()
	configPath = app.Flag("config", "Configuration file.").Short('c').Default("config.yaml").String()

	startCmd   = app.Command("start", "Run the prop on the attached hardware")
	simCmd     = app.Command("sim", "Run the prop in a terminal simulator")
	simLog     = simCmd.Flag("log", "File to write the simulator log to.").Default("blaster-sim.log").String()
	checkCmd   = app.Command("check", "Validate the configuration and print the effective values")
	versionCmd = app.Command("version", "Print the version")
)

type colorFormatter struct {
	log.TextFormatter
}

func (f *colorFormatter) Format(entry *log.Entry) ([]byte, error) {
	var levelColor int
	switch entry.Level {
	case log.DebugLevel, log.TraceLevel:
		levelColor = 90 // dark grey
	case log.WarnLevel:
		levelColor = 33 // yellow
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		levelColor = 91 // bright red
	default:
		levelColor = 39 // default
	}
	return []byte(fmt.Sprintf("\x1b[%dm%s\x1b[0m\n", levelColor, entry.Message)), nil
}

func main() {
	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("%v: Try --help\n", err.Error())
		os.Exit(1)
	}

	if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		log.SetFormatter(&colorFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	switch cmd {
	case startCmd.FullCommand():
		startProp(loadConfig())
	case simCmd.FullCommand():
		simulate(loadConfig(), *simLog)
	case checkCmd.FullCommand():
		check()
	case versionCmd.FullCommand():
		showVersion()
	default:
		kingpin.FatalUsage("Unrecognized command")
	}
}
