package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/sntp/lib/config"
	"github.com/go-i2p/sntp/lib/sntp"
)

var log = logger.GetGoI2PLogger()

func main() {
	offset := flag.Bool("offset", false, "print the local clock offset in seconds instead of the network time")
	strict := flag.Bool("strict", false, "reject responses that fail the RFC 4330 sanity checks")
	verbose := flag.Bool("verbose", false, "print server metadata from the decoded response")
	cfgFile := flag.String("config", "", "path to the sntp config file")
	flag.Parse()

	config.CfgFile = *cfgFile
	config.InitConfig()
	cfg := config.NewCLIConfigFromViper()

	server := cfg.Server
	if flag.NArg() > 0 {
		server = flag.Arg(0)
	}

	log.Debug("querying sntp server: ", server)
	ex, err := sntp.Query(server)
	if err != nil {
		log.WithError(err).Error("sntp query failed")
		fmt.Fprintf(os.Stderr, "sntp: %s\n", err)
		os.Exit(1)
	}

	if (*strict || cfg.Strict) && !sntp.ValidateResponse(&ex.Response) {
		fmt.Fprintf(os.Stderr, "sntp: response from %s failed strict validation\n", server)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("server=%s stratum=%d leap=%d version=%d mode=%d refid=0x%08x\n",
			server, ex.Response.Stratum, ex.Response.LeapIndicator,
			ex.Response.VersionNumber, ex.Response.Mode, ex.Response.ReferenceID)
	}

	if *offset {
		fmt.Printf("%.9f\n", float64(ex.ClockOffsetNanos())/1e9)
		return
	}

	now := time.Unix(0, ex.UnixTimestamp().Nanoseconds()).UTC()
	fmt.Println(now.Format(time.RFC3339Nano))
}
