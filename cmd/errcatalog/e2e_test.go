package main

// End-to-end publish tests. They need a reachable Kubernetes cluster and
// kubectl on PATH, and are skipped with -short.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func skipIfShort(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
}

func skipIfNoCluster(t *testing.T) {
	cmd := exec.Command("kubectl", "cluster-info")
	if err := cmd.Run(); err != nil {
		t.Skip("skipping: no Kubernetes cluster accessible (run 'kind create cluster' or similar)")
	}
}

// kubectl runs kubectl and returns its stdout.
func kubectl(t *testing.T, args ...string) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "kubectl", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Fatalf("kubectl %v failed: %v\nstdout: %s\nstderr: %s",
			args, err, stdout.String(), stderr.String())
	}
	return stdout.String()
}

func TestPublishLifecycle(t *testing.T) {
	skipIfShort(t)
	skipIfNoCluster(t)

	namespace := "default"
	name := fmt.Sprintf("errcatalog-e2e-%d", time.Now().Unix())
	t.Cleanup(func() {
		_ = exec.Command("kubectl", "delete", "configmap", name, "-n", namespace, "--ignore-not-found").Run()
	})

	// Publishing twice updates the same ConfigMap.
	for i := 0; i < 2; i++ {
		if _, err := execute(t, "publish", "--namespace", namespace, "--name", name); err != nil {
			t.Fatalf("publish #%d failed: %v", i+1, err)
		}
	}

	raw := kubectl(t, "get", "configmap", name, "-n", namespace,
		"-o", `jsonpath={.data.catalog\.json}`)
	var doc struct {
		Entries []struct {
			Domain string `json:"domain"`
			Code   string `json:"code"`
		} `json:"entries"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("published catalog is not JSON: %v\n%s", err, raw)
	}
	if len(doc.Entries) == 0 {
		t.Fatal("published catalog has no entries")
	}

	managedBy := kubectl(t, "get", "configmap", name, "-n", namespace,
		"-o", `jsonpath={.metadata.labels.app\.kubernetes\.io/managed-by}`)
	if strings.TrimSpace(managedBy) != "errcatalog" {
		t.Errorf("managed-by label = %q, want errcatalog", managedBy)
	}
}
