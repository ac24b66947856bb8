// Package pipeline drives a gallery update: fetch the media listing, write
// it to the JSON file, render the HTML page. Stages run sequentially and the
// first error stops the run.
package pipeline
