// Package github lists the releases of a GitHub repository.
//
// # Usage
//
//	client := github.NewReleaseClient("", "etiennebacher", "jarl", token, logger)
//
//	latest, err := client.Latest(ctx) // "0.1.2"
//	tags, err := client.List(ctx)     // every tag, all pages
//
// [ReleaseClient] satisfies the version.Releases interface so it can be
// handed directly to a version.Resolver.
//
// # Authentication
//
// A token is optional. When GitHub rejects it with 401 Bad credentials
// (expired, revoked, or a token for another host) the request is repeated
// once anonymously. Anonymous requests are limited to 60 per hour.
//
// # Errors
//
// An empty release list is reported with the REGISTRY code, since GitHub
// normally never returns one for a repository with releases. Exhausted
// rate limits carry the RATE_LIMITED code.
package github
