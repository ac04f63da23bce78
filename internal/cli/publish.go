package cli

// This file implements the "publish" command, which stores the exported
// catalog in a ConfigMap so in-cluster services can read it.

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	ctrlconfig "sigs.k8s.io/controller-runtime/pkg/client/config"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	"errcatalog/internal/export"
	"errcatalog/pkg/errx"
)

const publishTimeout = 30 * time.Second

// NewScheme returns a scheme with the client-go types registered.
func NewScheme() (*runtime.Scheme, error) {
	scheme := runtime.NewScheme()
	if err := clientgoscheme.AddToScheme(scheme); err != nil {
		return nil, err
	}
	return scheme, nil
}

// defaultClientFactory builds a client from the in-cluster config or the
// current kubeconfig context.
func defaultClientFactory() (client.Client, error) {
	restCfg, err := ctrlconfig.GetConfig()
	if err != nil {
		return nil, err
	}
	scheme, err := NewScheme()
	if err != nil {
		return nil, err
	}
	return client.New(restCfg, client.Options{Scheme: scheme})
}

func (m *CatalogManager) newPublishCmd() *cobra.Command {
	var namespace string
	var name string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the error catalog to a ConfigMap",
		Long:  "Create or update a ConfigMap holding the JSON error catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("namespace") {
				namespace = m.cfg.Namespace
			}
			if !cmd.Flags().Changed("name") {
				name = m.cfg.ConfigMapName
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), publishTimeout)
			defer cancel()
			return m.Publish(ctx, namespace, name)
		},
	}

	cmd.Flags().StringVar(&namespace, "namespace", DefaultNamespace, "ConfigMap namespace")
	cmd.Flags().StringVar(&name, "name", DefaultConfigMapName, "ConfigMap name")

	return cmd
}

// Publish creates or updates the ConfigMap namespace/name with the catalog.
func (m *CatalogManager) Publish(ctx context.Context, namespace, name string) error {
	if namespace == "" || name == "" {
		err := newWithSentinel(ErrInvalidArguments, "namespace and name are required")
		m.printer.Error("Namespace and name are required")
		return err
	}

	c, err := m.load()
	if err != nil {
		m.printer.Error("Failed to build the error catalog")
		return err
	}
	doc := export.NewDocument(c, export.Options{DocsBaseURL: m.cfg.DocsBaseURL})
	data, err := export.EncodeJSON(doc)
	if err != nil {
		return wrapWithSentinel(ErrExportFailed, err, "failed to encode catalog")
	}

	if m.newClient == nil {
		return newWithSentinel(ErrKubeClientFailed, "no Kubernetes client configured")
	}
	kube, err := m.newClient()
	if err != nil {
		wrappedErr := wrapWithSentinel(ErrKubeClientFailed, err, fmt.Sprintf("failed to create Kubernetes client: %v", err))
		m.printer.Error("Failed to create Kubernetes client")
		logStructuredError(m.logger, wrappedErr, "Failed to create Kubernetes client")
		return wrappedErr
	}

	stop := m.printer.SpinnerStart(fmt.Sprintf("Publishing %d error codes to %s/%s", len(doc.Entries), namespace, name))
	cm := &corev1.ConfigMap{ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace}}
	result, err := controllerutil.CreateOrUpdate(ctx, kube, cm, func() error {
		export.ApplyConfigMap(cm, doc, data)
		return nil
	})
	if err != nil {
		stop(false, "Publish failed")
		wrappedErr := errx.FromSentinel(ErrPublishFailed, lookupSpec, "", err).
			WithField("namespace", namespace).
			WithField("name", name)
		m.printer.Error(wrappedErr.Message())
		logStructuredError(m.logger, wrappedErr, "Failed to publish catalog")
		return wrappedErr
	}

	stop(true, fmt.Sprintf("ConfigMap %s/%s %s", namespace, name, result))
	m.logger.Debug("Published error catalog",
		zap.String("namespace", namespace),
		zap.String("name", name),
		zap.String("result", string(result)),
		zap.Int("entries", len(doc.Entries)))
	return nil
}
