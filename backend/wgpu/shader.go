package wgpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// PositionColorShaderWGSL draws batch.VertexPositionColor vertices whose
// positions are already in clip space. Entry points: vs_main and fs_main.
//
//go:embed shaders/position_color.wgsl
var PositionColorShaderWGSL string

// CompileShader compiles WGSL source to SPIR-V words with naga.
func CompileShader(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// NewShaderModule compiles wgsl and creates a shader module on device.
func NewShaderModule(device hal.Device, label, wgsl string) (hal.ShaderModule, error) {
	spirv, err := CompileShader(wgsl)
	if err != nil {
		return nil, err
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create shader module %s: %w", label, err)
	}
	return module, nil
}
