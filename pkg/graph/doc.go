// Package graph is a minimal client for the Instagram Graph API media edge.
//
// It issues one GET per call, with no retries and no pagination:
//
//	client := graph.NewClient(&cfg.Graph, log)
//	records, err := client.FetchMedia(ctx, cfg.Graph.AccountID, cfg.Graph.Limit)
//	if err != nil {
//	    var gErr *errors.Error
//	    if stderrors.As(err, &gErr) && gErr.Type == errors.ErrorTypeAuth {
//	        // token expired or revoked
//	    }
//	}
//
// Every returned record already has its display URL filled in.
package graph
