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

const envPrefix = "RESERVE_"

type Application struct {
	Listen   string   `koanf:"listen"`
	Calendar Calendar `koanf:"calendar"`
	Mark     Mark     `koanf:"mark"`
}

type Calendar struct {
	ThemePrefix    string `koanf:"themeprefix"`
	DefaultTheme   string `koanf:"defaulttheme"`
	IdPrefix       string `koanf:"idprefix"`
	TaskCreatePath string `koanf:"taskcreatepath"`
}

type Mark struct {
	// BaseURL is used for buttons bound without an explicit URL: <BaseURL>/<button id>/
	BaseURL         string        `koanf:"baseurl"`
	Timeout         time.Duration `koanf:"timeout"`
	MessageDuration time.Duration `koanf:"messageduration"`
}

func Defaults() Application {
	return Application{
		Listen: ":8181",
		Calendar: Calendar{
			ThemePrefix:    "fc-",
			DefaultTheme:   "event-primary",
			IdPrefix:       "added-event-id-",
			TaskCreatePath: "/task/create/",
		},
		Mark: Mark{
			BaseURL:         "",
			Timeout:         10 * time.Second,
			MessageDuration: 3 * time.Second,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		log.Errorf("error unmarshalling config: %v", err)
		return Application{}, err
	}

	return app, nil
}
