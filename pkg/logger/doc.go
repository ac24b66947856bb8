// Package logger is the structured logging layer of iggallery, a thin
// interface over zerolog.
//
//	if err := logger.Initialize(&cfg.Logging); err != nil {
//	    return err
//	}
//	logger.WithField("account_id", cfg.Graph.AccountID).Info("Fetching media")
//
// Components take a Logger explicitly; tests pass NewTestLogger or NewNopLogger.
package logger
