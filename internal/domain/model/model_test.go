package model

import "testing"

func TestDisplayNumber(t *testing.T) {
	cases := []struct {
		raw  int64
		want int
	}{
		{1, 1},
		{42, 42},
		{99, 99},
		{100, 100},
		{101, 1},
		{150, 50},
		{200, 100},
		{201, 1},
		{100000, 100},
	}
	for _, c := range cases {
		if got := DisplayNumber(c.raw); got != c.want {
			t.Errorf("DisplayNumber(%d) = %d, want %d", c.raw, got, c.want)
		}
	}
}

func TestDisplayNumberNeverZero(t *testing.T) {
	for raw := int64(1); raw <= 1000; raw++ {
		got := DisplayNumber(raw)
		if got < 1 || got > 100 {
			t.Fatalf("DisplayNumber(%d) = %d out of [1,100]", raw, got)
		}
	}
}

func TestCanTransition(t *testing.T) {
	allowed := map[[2]OrderStatus]bool{
		{OrderStatusPending, OrderStatusConfirmed}:   true,
		{OrderStatusPending, OrderStatusRejected}:    true,
		{OrderStatusConfirmed, OrderStatusDelivered}: true,
		{OrderStatusConfirmed, OrderStatusRejected}:  true,
	}
	statuses := []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusRejected}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]OrderStatus{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestValidStatus(t *testing.T) {
	if !ValidStatus(OrderStatusDelivered) {
		t.Fatal("DELIVERED should be valid")
	}
	if ValidStatus("SHIPPED") {
		t.Fatal("unknown status should be invalid")
	}
}

func TestUserIsAdmin(t *testing.T) {
	if (&User{Role: RoleUser}).IsAdmin() {
		t.Fatal("regular user must not be admin")
	}
	if !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Fatal("admin user should be admin")
	}
}
