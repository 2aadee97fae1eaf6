// Package policy loads the analytics policy from YAML and keeps it current as the file changes.
package policy

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/turtacn/cadetops/internal/domain/service"
	"github.com/turtacn/cadetops/pkg/errors"
)

// LoadPolicyFile overlays the YAML file at path onto base and validates the result.
// Keys absent from the file keep the value from base; unknown keys are rejected.
// LoadPolicyFile 将 path 处的 YAML 文件覆盖到 base 上并验证结果。
// 文件中缺失的键保留 base 中的值；未知键会被拒绝。
func LoadPolicyFile(path string, base service.AnalyticsPolicy) (service.AnalyticsPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return service.AnalyticsPolicy{}, fmt.Errorf("failed to read policy file: %w", err)
	}
	return ParsePolicy(data, base)
}

// ParsePolicy overlays YAML data onto base and validates the result.
// ParsePolicy 将 YAML 数据覆盖到 base 上并验证结果。
func ParsePolicy(data []byte, base service.AnalyticsPolicy) (service.AnalyticsPolicy, error) {
	policy := base

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&policy); err != nil && err != io.EOF {
		return service.AnalyticsPolicy{}, errors.ErrInvalidPolicy("failed to parse policy file").WithCause(err)
	}

	if err := policy.Validate(); err != nil {
		return service.AnalyticsPolicy{}, err
	}
	return policy, nil
}

// MarshalPolicy renders a policy as YAML.
// MarshalPolicy 将策略渲染为 YAML。
func MarshalPolicy(policy service.AnalyticsPolicy) ([]byte, error) {
	return yaml.Marshal(policy)
}
