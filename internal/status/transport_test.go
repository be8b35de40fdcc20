package status

import "testing"

func TestTransportConnectedFlag(t *testing.T) {
	SetTransportConnected(false)
	if IsTransportConnected() {
		t.Fatal("IsTransportConnected() = true before any connect")
	}

	SetTransportConnected(true)
	if !IsTransportConnected() {
		t.Fatal("IsTransportConnected() = false after connect")
	}

	// Repeated sets are idempotent.
	SetTransportConnected(true)
	if !IsTransportConnected() {
		t.Fatal("IsTransportConnected() = false after repeated connect")
	}

	SetTransportConnected(false)
	if IsTransportConnected() {
		t.Fatal("IsTransportConnected() = true after disconnect")
	}
}
