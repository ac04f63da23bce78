package export

import (
	"strconv"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

// ConfigMap data key and labels.
const (
	ConfigMapKey      = "catalog.json"
	LabelName         = "app.kubernetes.io/name"
	LabelManagedBy    = "app.kubernetes.io/managed-by"
	AnnotationEntries = "errcatalog.io/entries"
)

const appName = "errcatalog"

// ConfigMapTarget names the ConfigMap holding an exported catalog.
type ConfigMapTarget struct {
	Namespace string
	Name      string
}

// NewConfigMap builds a ConfigMap carrying the JSON document.
func NewConfigMap(doc Document, target ConfigMapTarget) (*corev1.ConfigMap, error) {
	data, err := EncodeJSON(doc)
	if err != nil {
		return nil, err
	}
	cm := &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      target.Name,
			Namespace: target.Namespace,
		},
	}
	ApplyConfigMap(cm, doc, data)
	return cm, nil
}

// ApplyConfigMap writes the document data, labels and entry count onto cm.
func ApplyConfigMap(cm *corev1.ConfigMap, doc Document, data []byte) {
	if cm.Labels == nil {
		cm.Labels = map[string]string{}
	}
	cm.Labels[LabelName] = appName
	cm.Labels[LabelManagedBy] = appName
	if cm.Annotations == nil {
		cm.Annotations = map[string]string{}
	}
	cm.Annotations[AnnotationEntries] = strconv.Itoa(len(doc.Entries))
	if cm.Data == nil {
		cm.Data = map[string]string{}
	}
	cm.Data[ConfigMapKey] = string(data)
}

// EncodeConfigMap renders the ConfigMap manifest as YAML.
func EncodeConfigMap(doc Document, target ConfigMapTarget) ([]byte, error) {
	cm, err := NewConfigMap(doc, target)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(cm)
	if err != nil {
		return nil, encodeError(FormatConfigMap, err)
	}
	return out, nil
}
