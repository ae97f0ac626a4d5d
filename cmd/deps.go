package cmd

import (
	"log"

	"sixgo.GO/client"
	"sixgo.GO/config"
	corecache "sixgo.GO/core/cache"
	"sixgo.GO/localstore"
	"sixgo.GO/products"
	"sixgo.GO/resources"
	"sixgo.GO/session"
)

// services is the console stack a one-shot command needs: the persisted
// session, the cached taxonomy and the product search.
type services struct {
	Session   *session.Manager
	Resources *resources.Cache
	Search    *products.Orchestrator
}

// bootstrap builds the stack the same way the server does, minus the HTTP
// surface. Each command calls this inside Run so plain --help never touches
// storage or the network.
func bootstrap() *services {
	config.LoadAppConfig()
	config.InitRedis()

	store, err := localstore.New()
	if err != nil {
		log.Fatalf("localstore: %v", err)
	}

	sessions := session.NewManager(store)
	upstream := config.GetUpstream()
	onAuthFailure := client.WithUnauthorizedHook(sessions.Clear)
	tokens := client.WithTokenSource(sessions)

	identity := client.New(func() string { return upstream.IdentityAPI }, tokens, onAuthFailure)
	sessions.SetIdentityClient(identity)

	resourceClient := client.New(func() string { return upstream.ResourceAPI }, tokens, onAuthFailure)
	adminClient := client.New(func() string { return upstream.AdminAPI }, tokens, onAuthFailure)

	return &services{
		Session:   sessions,
		Resources: resources.NewCache(store, resourceClient),
		Search:    products.NewOrchestrator(adminClient, corecache.NewCache()),
	}
}
