/*
Package events provides an in-memory event broker for clusterview's pub/sub
messaging.

The state store publishes one event per applied transition, and the poller
publishes view mount and unmount events. Presentation code subscribes to learn
that the snapshot changed and then reads it back from the store; events carry
no snapshot data themselves.

# Delivery

	Publisher -> Event Channel (buffer: 100) -> Broadcast Loop -> Subscriber Channels (buffer: 50 each)

Publishing never blocks. When the queue is full the event is dropped and
counted by Dropped; when one subscriber's buffer is full the event is skipped
for that subscriber only and counted by Skipped.

Subscribe optionally takes the event types to receive:

	views := broker.Subscribe(events.EventViewMounted, events.EventViewUnmounted)

# Event Types

	store.requested      an operation entered the request phase
	store.succeeded      an operation succeeded and the snapshot changed
	store.failed         an operation failed; Message carries the error
	store.error_cleared  the global error was cleared
	store.restored       the snapshot was restored from a checkpoint
	view.mounted         a polling view started
	view.unmounted       a polling view stopped
	checkpoint.saved     the snapshot was written to disk

Metadata keys used by the store: "kind", "op", "request_id".

# Usage

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	sub := broker.Subscribe()
	defer broker.Unsubscribe(sub)

	for event := range sub {
		fmt.Println(event.Type, event.Metadata["kind"])
	}
*/
package events
