//go:build !android

package glrender

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Instanced billboard: the mat4 carries centre and uniform scale, the quad is
// expanded in view space so it always faces the camera.
const instanceVertSrc = `#version 410 core

layout(location = 0) in vec2 aCorner; // -1..1 quad corner
layout(location = 1) in vec4 aModel0;
layout(location = 2) in vec4 aModel1;
layout(location = 3) in vec4 aModel2;
layout(location = 4) in vec4 aModel3;
layout(location = 5) in vec4 aColor;

uniform mat4 uView;
uniform mat4 uProj;

out vec2 vUV;
out vec4 vColor;

void main() {
    float size = length(aModel0.xyz);
    vec4 centre = uView * vec4(aModel3.xyz, 1.0);
    centre.xy += aCorner * size;
    gl_Position = uProj * centre;
    vUV = aCorner;
    vColor = aColor;
}
` + "\x00"

// uAlphaMode 0: premultiplied rgb, additive. 1: straight alpha in a.
// uSoftness widens the falloff for halos.
const instanceFragSrc = `#version 410 core

uniform int uAlphaMode;
uniform float uSoftness;

in vec2 vUV;
in vec4 vColor;
out vec4 FragColor;

void main() {
    float d = length(vUV);
    if (d > 1.0) discard;
    float f = pow(1.0 - d, uSoftness);
    if (uAlphaMode == 0) {
        FragColor = vec4(vColor.rgb * f, 1.0);
    } else {
        FragColor = vec4(vColor.rgb, vColor.a * f);
    }
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
