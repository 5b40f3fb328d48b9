package materialize

import (
	"reflect"
	"testing"
)

func TestParseEnv(t *testing.T) {
	env := map[string]string{}
	parseEnv([]byte("K=V\nexport TOKEN=abc\n# comment\nnot an assignment\n"), env)

	want := map[string]string{"K": "V", "TOKEN": "abc"}
	if !reflect.DeepEqual(env, want) {
		t.Errorf("Expected %v, got: %v", want, env)
	}
}

func TestParseEnv_LaterOverwritesEarlier(t *testing.T) {
	env := map[string]string{}
	parseEnv([]byte("K=first\n"), env)
	parseEnv([]byte("K=second\n"), env)

	if env["K"] != "second" {
		t.Errorf("Expected later assignment to win, got: %q", env["K"])
	}
}

func TestParseEnv_IgnoresInvalidNames(t *testing.T) {
	env := map[string]string{}
	parseEnv([]byte("1BAD=x\n-ALSO=y\nOK_2=z\n"), env)

	want := map[string]string{"OK_2": "z"}
	if !reflect.DeepEqual(env, want) {
		t.Errorf("Expected %v, got: %v", want, env)
	}
}

func TestParseEnv_ValueMayContainEquals(t *testing.T) {
	env := map[string]string{}
	parseEnv([]byte("URL=postgres://u:p@host?sslmode=disable\n"), env)

	if env["URL"] != "postgres://u:p@host?sslmode=disable" {
		t.Errorf("Expected the full value, got: %q", env["URL"])
	}
}

func TestParseEnv_CRLF(t *testing.T) {
	env := map[string]string{}
	parseEnv([]byte("K=V\r\n"), env)

	if env["K"] != "V" {
		t.Errorf("Expected carriage return to be stripped, got: %q", env["K"])
	}
}

func TestBaseEnvFlattenEnv_RoundTrip(t *testing.T) {
	in := []string{"A=1", "B=two=2"}
	env := baseEnv(in)

	flat := flattenEnv(env)
	out := baseEnv(flat)
	if !reflect.DeepEqual(env, out) {
		t.Errorf("Expected round trip to preserve the environment, got: %v", out)
	}
}
