package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
)

var null = []byte("null")

// flexID identificador que el backend envía como número o como string.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// flexInt entero que puede venir como número, string o null.
type flexInt struct {
	Value int
	Valid bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	*f = flexInt{}
	if bytes.Equal(b, null) {
		return nil
	}
	raw := strings.Trim(string(b), `"`)
	if raw == "" {
		return nil
	}
	if n, err := strconv.ParseInt(raw, 10, 0); err == nil {
		*f = flexInt{Value: int(n), Valid: true}
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return err
	}
	// "3.0" o 3e2 son enteros válidos; 2.7, NaN o valores fuera de rango no
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return fmt.Errorf("entero inválido: %s", raw)
	}
	*f = flexInt{Value: int(v), Valid: true}
	return nil
}

func (f flexInt) ptr() *int {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// decodeRef interpreta una licencia o categoría: null, un string con el nombre
// o un objeto {<idKey>, <nameKey>}.
func decodeRef(raw json.RawMessage, idKey, nameKey string) *entity.Ref {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, null) {
		return nil
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil
		}
		return entity.NameRef(name)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	var id flexID
	_ = json.Unmarshal(obj[idKey], &id)
	_ = json.Unmarshal(obj[nameKey], &name)
	if strings.TrimSpace(name) == "" {
		return nil
	}
	return entity.IDRef(string(id), strings.TrimSpace(name))
}

// decodeList acepta un arreglo o un objeto que lo envuelve bajo key.
func decodeList(raw []byte, key string, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return err
		}
		inner, ok := wrapper[key]
		if !ok {
			return nil
		}
		trimmed = inner
	}
	return decode(trimmed, out)
}
