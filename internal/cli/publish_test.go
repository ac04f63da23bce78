package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"errcatalog/internal/export"
)

func fakeFactory(t *testing.T, objs ...client.Object) (ClientFactory, client.Client) {
	t.Helper()
	scheme, err := NewScheme()
	require.NoError(t, err)
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(objs...).Build()
	return func() (client.Client, error) { return c, nil }, c
}

func TestCatalogManager_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("creates configmap", func(t *testing.T) {
		factory, kube := fakeFactory(t)
		mgr, _ := newTestManager(t, staticSource{catalog: testCatalog(t)}, nil, factory)

		require.NoError(t, mgr.Publish(ctx, "ops", "errors"))

		var cm corev1.ConfigMap
		require.NoError(t, kube.Get(ctx, types.NamespacedName{Namespace: "ops", Name: "errors"}, &cm))
		assert.Equal(t, "errcatalog", cm.Labels[export.LabelManagedBy])
		assert.Equal(t, "3", cm.Annotations[export.AnnotationEntries])
		assert.Contains(t, cm.Data[export.ConfigMapKey], "CARD_DECLINED")
	})

	t.Run("updates existing configmap and keeps foreign data", func(t *testing.T) {
		existing := &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Namespace: "ops", Name: "errors", Labels: map[string]string{"team": "platform"}},
			Data:       map[string]string{"other": "kept", export.ConfigMapKey: "stale"},
		}
		factory, kube := fakeFactory(t, existing)
		mgr, _ := newTestManager(t, staticSource{catalog: testCatalog(t)}, nil, factory)

		require.NoError(t, mgr.Publish(ctx, "ops", "errors"))

		var cm corev1.ConfigMap
		require.NoError(t, kube.Get(ctx, types.NamespacedName{Namespace: "ops", Name: "errors"}, &cm))
		assert.Equal(t, "kept", cm.Data["other"])
		assert.Equal(t, "platform", cm.Labels["team"])
		assert.NotEqual(t, "stale", cm.Data[export.ConfigMapKey])
	})

	t.Run("requires namespace and name", func(t *testing.T) {
		mgr, _ := newTestManager(t, staticSource{catalog: testCatalog(t)}, nil, nil)
		err := mgr.Publish(ctx, "", "errors")
		assert.ErrorIs(t, err, ErrInvalidArguments)
	})

	t.Run("client failure", func(t *testing.T) {
		factory := func() (client.Client, error) { return nil, errors.New("no kubeconfig") }
		mgr, _ := newTestManager(t, staticSource{catalog: testCatalog(t)}, nil, factory)

		err := mgr.Publish(ctx, "ops", "errors")
		assert.ErrorIs(t, err, ErrKubeClientFailed)
	})
}

func TestPublishCmd_UsesConfiguredTarget(t *testing.T) {
	factory, kube := fakeFactory(t)
	cfg := &Config{Namespace: "catalogs", ConfigMapName: "app-errors"}
	mgr, _ := newTestManager(t, staticSource{catalog: testCatalog(t)}, cfg, factory)

	cmd := mgr.newPublishCmd()
	cmd.SetArgs([]string{})
	cmd.SetContext(context.Background())
	require.NoError(t, cmd.Execute())

	var cm corev1.ConfigMap
	require.NoError(t, kube.Get(context.Background(), types.NamespacedName{Namespace: "catalogs", Name: "app-errors"}, &cm))
}
