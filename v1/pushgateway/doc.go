// Package pushgateway periodically pushes the aggregated metrics of a
// registry to a Prometheus Pushgateway.
//
// The Scheduler is configured once. If the gateway URL, the job name or the
// URL's syntax is missing or wrong it stays Disabled and Start is a no-op;
// misconfiguration and absence of configuration are deliberately not told
// apart. Otherwise every Interval it dispatches one asynchronous push-add of
// the current snapshot and hands the outcome to a Callback. A failed push is
// reported and forgotten: there are no retries, no backoff and no queue, the
// next tick simply tries again.
//
//	s := pushgateway.NewScheduler(pushgateway.Config{
//		URL:      "http://pushgateway:9091",
//		JobName:  "orders-batch",
//		Interval: 30 * time.Second,
//	}, m.Gatherer(), log)
//	s.Start()
//	defer s.Stop(context.Background())
//
// # HTTP client
//
// Pushes share one keep-alive client: at most MaxSockets connections to the
// gateway, a KeepAlive of 10 seconds and a fixed RequestTimeout of 5 seconds
// per push. At most MaxSockets pushes are in flight; a tick that finds them
// all busy is reported with ErrPushInFlight instead of being queued.
//
// # States
//
//	Disabled                     missing or invalid configuration
//	Idle -> Scheduled            Start arms the ticker
//	Scheduled <-> Pushing        per tick
//	* -> Stopped                 Stop at shutdown
package pushgateway
