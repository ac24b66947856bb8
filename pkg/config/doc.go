// Package config builds the single configuration value a gallery run uses.
//
// Sources are applied in order, later ones winning:
//
//	defaults -> YAML file -> environment (.env included) -> command line flags
//
// Environment variables keep the names the gallery has always used:
//
//	IG_USER_ID=17841400000000000
//	IG_ACCESS_TOKEN=IGQW...
//	GRAPH_API_VERSION=v24.0
//	IG_LIMIT=5
//
// Typical use:
//
//	cfg, err := config.Load("", nil)
//	if err != nil {
//	    return err
//	}
//	if err := cfg.RequireCredentials(); err != nil {
//	    return err
//	}
package config
