// Package api is a thin typed client for the recycling backend's REST
// catalogue. It performs CRUD over an http.Client whose transport already
// carries the credential and trace headers; no presentation logic lives
// here.
package api
