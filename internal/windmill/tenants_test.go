package windmill

import (
	"context"
	"net/http"
	"reflect"
	"testing"
)

// Two reads with no intervening mutation must decode to structurally
// identical, order-preserving slices.
func TestListTenantsIdempotent(t *testing.T) {
	body := `[
		{"id":"t1","name":"Ortega family","plan":"plus","member_count":4},
		{"id":"t2","name":"Nilsen family","plan":"free","member_count":2}
	]`
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if want := "/api/w/famvault/jobs/run_wait_result/p/f/admin/list_tenants"; r.URL.Path != want {
			t.Errorf("path = %s, want %s", r.URL.Path, want)
		}
		_, _ = w.Write([]byte(body))
	})

	first, err := client.ListTenants(context.Background())
	if err != nil {
		t.Fatalf("first ListTenants: %v", err)
	}
	second, err := client.ListTenants(context.Background())
	if err != nil {
		t.Fatalf("second ListTenants: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("lists differ:\n%+v\n%+v", first, second)
	}
	if len(first) != 2 || first[0].ID != "t1" || first[1].ID != "t2" {
		t.Errorf("order not preserved: %+v", first)
	}
}
