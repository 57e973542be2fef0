package main

import (
	"flag"
	"os"
)

type Args struct {
	settingsFile string
	catalog      string
	credentials  string
	profile      string
	region       string
	endpoint     string
	bucket       string
	output       string
}

func NewArgsGetter() *Args {
	return parseArgs(flag.CommandLine, nil)
}

// parseArgs reads flags from args (os.Args[1:] when nil). The first positional
// argument, if any, overrides the catalog path.
func parseArgs(fs *flag.FlagSet, args []string) *Args {
	var (
		settingsFile = fs.String("config_file", "migrate.yaml", "optional settings file")
		credentials  = fs.String("credentials", "", "shared credentials file of the destination account")
		profile      = fs.String("profile", "", "credentials profile")
		region       = fs.String("region", "", "destination bucket region")
		endpoint     = fs.String("endpoint", "", "s3 compatible endpoint, empty for aws")
		bucket       = fs.String("bucket", "", "destination bucket")
		output       = fs.String("output", "", "mapping file written at the end of the run")
	)

	if args == nil {
		args = os.Args[1:]
	}
	fs.Parse(args)

	return &Args{
		settingsFile: *settingsFile,
		catalog:      fs.Arg(0),
		credentials:  *credentials,
		profile:      *profile,
		region:       *region,
		endpoint:     *endpoint,
		bucket:       *bucket,
		output:       *output,
	}
}
