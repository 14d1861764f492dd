package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const DefaultPath = "./config/application.yaml"

type Application struct {
	Api           Api           `koanf:"api"`
	Server        Server        `koanf:"server"`
	Database      Database      `koanf:"db"`
	Notifications Notifications `koanf:"notifications"`
	Routes        Routes        `koanf:"routes"`
}

// Api describes the events backend the client talks to.
type Api struct {
	BaseUrl string `koanf:"baseurl"`
	// Timeout of zero means requests never time out.
	Timeout time.Duration `koanf:"timeout"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

type Database struct {
	// Driver is one of memory, sqlite or postgres.
	Driver string `koanf:"driver"`
	Path   string `koanf:"path"`
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Notifications struct {
	Duration time.Duration `koanf:"duration"`
}

type Routes struct {
	Detail DetailRoute `koanf:"detail"`
}

type DetailRoute struct {
	Enabled bool `koanf:"enabled"`
}

func Defaults() Application {
	return Application{
		Api: Api{
			BaseUrl: "http://localhost:3000",
		},
		Server: Server{
			Addr: ":3000",
		},
		Database: Database{
			Driver: "memory",
			Path:   "eventdesk.db",
			Host:   "localhost",
			Port:   5432,
			User:   "eventdesk",
			Pass:   "",
			Name:   "eventdesk",
			Schema: "public",
		},
		Notifications: Notifications{
			Duration: 3 * time.Second,
		},
		Routes: Routes{
			Detail: DetailRoute{Enabled: true},
		},
	}
}

// Load layers defaults, the YAML file at path (if it exists) and EVENTDESK_* environment variables.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Debugf("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "EVENTDESK_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "EVENTDESK_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
