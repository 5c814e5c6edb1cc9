package main

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path"

	"github.com/krancour/yuadmin/internal/file"
	"github.com/krancour/yuadmin/internal/tokenstore"
	"github.com/pkg/errors"
)

// config is what `yuadmin login` remembers between invocations. The token
// itself lives in the token store.
type config struct {
	APIAddress string `json:"apiAddress"`
}

func getConfig() (*config, error) {
	configFile, err := getConfigFile()
	if err != nil {
		return nil, err
	}
	if !file.Exists(configFile) {
		return nil, errors.Errorf(
			"no yuadmin configuration was found at %s; please use "+
				"`yuadmin login` to continue",
			configFile,
		)
	}

	configBytes, err := ioutil.ReadFile(configFile)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error reading yuadmin config file at %s",
			configFile,
		)
	}

	config := &config{}
	if err := json.Unmarshal(configBytes, config); err != nil {
		return nil, errors.Wrapf(
			err,
			"error parsing yuadmin config file at %s",
			configFile,
		)
	}

	return config, nil
}

func saveConfig(config *config) error {
	yuadminHome, err := tokenstore.Home()
	if err != nil {
		return errors.Wrap(err, "error finding yuadmin home")
	}
	if err = file.EnsureDirectory(yuadminHome); err != nil {
		return errors.Wrapf(
			err,
			"error creating yuadmin home at %s",
			yuadminHome,
		)
	}
	configFile := path.Join(yuadminHome, "config")

	configBytes, err := json.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "error marshaling config")
	}
	if err :=
		ioutil.WriteFile(configFile, configBytes, 0644); err != nil {
		return errors.Wrapf(err, "error writing to %s", configFile)
	}
	return nil
}

func deleteConfig() error {
	configFile, err := getConfigFile()
	if err != nil {
		return err
	}
	if err := os.Remove(configFile); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "error deleting configuration")
	}
	return nil
}

func getConfigFile() (string, error) {
	yuadminHome, err := tokenstore.Home()
	if err != nil {
		return "", errors.Wrap(err, "error finding yuadmin home")
	}
	return path.Join(yuadminHome, "config"), nil
}
