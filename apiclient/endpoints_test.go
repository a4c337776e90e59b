package apiclient

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/printshop/printshop-api/models"
	"github.com/printshop/printshop-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointsTable(t *testing.T) {
	seen := make(map[string]bool)
	for _, e := range Endpoints {
		t.Run(e.Alias, func(t *testing.T) {
			assert.False(t, seen[e.Alias], "duplicate alias")
			seen[e.Alias] = true

			assert.True(t, strings.HasPrefix(e.Path, "/api/"), "path %s", e.Path)
			assert.Contains(t, []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}, e.Method)

			// Every placeholder is declared as a path parameter
			declared := make(map[string]bool)
			for _, p := range e.Parameters {
				if p.In == InPath {
					declared[p.Name] = true
				}
			}
			for _, name := range e.PathParams() {
				assert.True(t, declared[name], "placeholder :%s is not declared", name)
			}
			assert.Len(t, declared, len(e.PathParams()))

			if e.Alias != "health" {
				for _, status := range []int{400, 401, 403, 404} {
					assert.True(t, e.Declares(status), "status %d", status)
				}
			}
		})
	}
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("addDesignsToProofingOrder")
	require.True(t, ok)
	assert.Equal(t, http.MethodPost, e.Method)
	assert.Equal(t, "/api/proofing-orders/:id/designs", e.Path)
	assert.Equal(t, []string{"id"}, e.PathParams())
	assert.True(t, e.Declares(http.StatusConflict))

	e, ok = Lookup("updateOrderDetail")
	require.True(t, ok)
	assert.True(t, e.Declares(http.StatusConflict), "shrinking below the allocated quantity conflicts")

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestInterpolate(t *testing.T) {
	path, err := interpolate("/api/orders/:id/timeline", map[string]string{"id": "12"})
	require.NoError(t, err)
	assert.Equal(t, "/api/orders/12/timeline", path)

	_, err = interpolate("/api/orders/:id", nil)
	assert.Error(t, err)
}

// nullPayload builds the JSON a backend sends when every field of t is null.
// Slices carry one such element.
func nullPayload(t reflect.Type) []byte {
	switch t.Kind() {
	case reflect.Slice:
		return []byte("[" + string(nullPayload(t.Elem())) + "]")
	case reflect.Struct:
		obj := make(map[string]any)
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				continue
			}
			if name == "" {
				name = f.Name
			}
			obj[name] = nil
		}
		b, _ := json.Marshal(obj)
		return b
	}
	return []byte("null")
}

func TestResponsesAcceptNullPayloads(t *testing.T) {
	for _, e := range Endpoints {
		if e.Response == nil {
			continue
		}
		t.Run(e.Alias, func(t *testing.T) {
			typ := reflect.TypeOf(e.Response)
			payload := nullPayload(typ)
			target := reflect.New(typ)
			require.NoError(t, json.Unmarshal(payload, target.Interface()), "payload %s", payload)
		})
	}
}

// minimalBodies holds the smallest valid JSON for every body schema.
var minimalBodies = map[reflect.Type]string{
	reflect.TypeOf(models.AddDesignsToProofingOrderRequest{}): `{"items":[{"orderDetailId":1,"quantity":1}],"totalQuantity":1}`,
	reflect.TypeOf(models.CreateDesignTypeRequest{}):          `{"code":"T","name":"Tem nhãn"}`,
	reflect.TypeOf(models.CreateDieExportRequest{}):           `{"proofingOrderId":1,"vendorName":"Khuôn Bế Minh","dieCount":1}`,
	reflect.TypeOf(models.CreatePaperSizeRequest{}):           `{"name":"A4"}`,
	reflect.TypeOf(models.CreatePaymentRequest{}):             `{"orderId":1,"amount":1,"method":"cash"}`,
	reflect.TypeOf(models.CreatePlateExportRequest{}):         `{"proofingOrderId":1,"plateVendorId":1,"plateCount":1}`,
	reflect.TypeOf(models.CreateProofingOrderRequest{}):       `{"materialTypeId":1}`,
	reflect.TypeOf(models.GenerateDesignCodeRequest{}):        `{"designTypeId":"1","customerCode":"ABC"}`,
	reflect.TypeOf(models.UpdateCustomerRequest{}):            `{}`,
	reflect.TypeOf(models.UpdateDesignTypeRequest{}):          `{}`,
	reflect.TypeOf(models.UpdateOrderDetailRequest{}):         `{}`,
	reflect.TypeOf(models.UpdateOrderRequest{}):               `{}`,
	reflect.TypeOf(models.UpdateProductionRequest{}):          `{}`,
}

func TestBodySchemasAcceptMinimalRequests(t *testing.T) {
	for _, e := range Endpoints {
		for _, p := range e.Parameters {
			if p.In != InBody {
				continue
			}
			t.Run(e.Alias, func(t *testing.T) {
				typ := reflect.TypeOf(p.Schema)
				body, ok := minimalBodies[typ]
				require.True(t, ok, "no minimal body for %s", typ)

				target := reflect.New(typ)
				require.NoError(t, json.Unmarshal([]byte(body), target.Interface()))
				assert.NoError(t, utils.ValidateStruct(target.Interface()), "body %s", body)

				// Schemas with required fields reject an empty object
				if body != `{}` {
					empty := reflect.New(typ)
					require.NoError(t, json.Unmarshal([]byte(`{}`), empty.Interface()))
					assert.Error(t, utils.ValidateStruct(empty.Interface()))
				}
			})
		}
	}
}
