package game

import "testing"

func TestDealExpired(t *testing.T) {
	d := &Deal{Status: DealActive}
	if d.Expired(100) {
		t.Error("deal without expiry should never expire")
	}
	expiry := 5
	d.ExpiryTurn = &expiry
	if d.Expired(4) {
		t.Error("deal should still run before its expiry turn")
	}
	if !d.Expired(5) {
		t.Error("deal should expire on its expiry turn")
	}
}
