// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

/*
Package supervisor runs the long-lived services under a suture v4 tree.

	RootSupervisor ("quizfunnel")
	├── MessagingSupervisor ("messaging-layer")
	│   ├── events.Router          (webhook delivery consumer)
	│   ├── outbox.Retrier         (if OUTBOX_ENABLED)
	│   └── services.UptimeService
	└── APISupervisor ("api-layer")
	    └── services.HTTPServerService

A crash in the delivery pipeline restarts only the messaging layer; the
quiz keeps scoring and accepting submissions while it recovers. Supervisor
events are logged through sutureslog into the zerolog pipeline.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMessagingService(router)
	tree.AddAPIService(services.NewHTTPServerService(srv, 15*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor
