package version

import (
	"log"
	"runtime"
)

const serviceName = "noque-api"

type Version struct {
	Service string `yaml:"service" json:"service"`
	Tag     string `yaml:"tag" json:"tag"`
	Commit  string `yaml:"commit" json:"commit"`
	Dirty   bool   `yaml:"dirty" json:"dirty"`
	// Schema is the newest migration applied at build time.
	Schema    string `yaml:"schema" json:"schema"`
	Go        string `yaml:"go" json:"go"`
	Platform  string `yaml:"platform" json:"platform"`
	BuildDate string `yaml:"build_date" json:"build_date"`
}

// Populated at build time with -ldflags "-X ...".
var (
	// Git tag
	Tag string
	// Git commit
	Commit string
	// Working tree state ("clean" or "dirty")
	Tree string
	// Newest migration version
	Schema string
	// Build date
	Date string
)

func Get() *Version {
	if len(Tag) == 0 {
		log.Print("no version tag provided - defaulting to v0.0.0")
		Tag = "v0.0.0"
	}

	return &Version{
		Service:   serviceName,
		Tag:       Tag,
		Commit:    Commit,
		Dirty:     Tree == "dirty",
		Schema:    Schema,
		Go:        runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		BuildDate: Date,
	}
}
