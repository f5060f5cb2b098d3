package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/nexus-docs/internal/apikeys"
	"github.com/ziadkadry99/nexus-docs/internal/config"
)

func useConfig(t *testing.T, secret string) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Auth.KeySigningSecret = secret
	path := filepath.Join(t.TempDir(), "nexusdocs.yml")
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	old := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = old })
}

func TestKeysVerify(t *testing.T) {
	useConfig(t, "operator-secret")
	signer, err := apikeys.NewSigner("operator-secret")
	if err != nil {
		t.Fatal(err)
	}
	secret, err := signer.Mint("client:7d3f", "9b1c2e44-0000-4000-8000-000000000001")
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	keysVerifyCmd.SetOut(&out)
	t.Cleanup(func() { keysVerifyCmd.SetOut(nil) })

	if err := keysVerifyCmd.RunE(keysVerifyCmd, []string{secret}); err != nil {
		t.Fatalf("verify: %v", err)
	}
	for _, want := range []string{"valid", "9b1c2e44-0000-4000-8000-000000000001", "client:7d3f"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestKeysVerifyRejectsForeignKey(t *testing.T) {
	useConfig(t, "operator-secret")
	other, _ := apikeys.NewSigner("someone-else")
	secret, _ := other.Mint("client:7d3f", "9b1c2e44-0000-4000-8000-000000000001")

	if err := keysVerifyCmd.RunE(keysVerifyCmd, []string{secret}); err == nil {
		t.Error("expected verification to fail for a key signed elsewhere")
	}
}

func TestKeysVerifyNeedsSecret(t *testing.T) {
	useConfig(t, "")
	if err := keysVerifyCmd.RunE(keysVerifyCmd, []string{"nxk_x_y"}); err == nil {
		t.Error("expected an error without a signing secret")
	}
}
