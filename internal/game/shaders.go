package game

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Building vertex shader: per-vertex position, normal and colour; the
// cell translation is folded into uModelView.
const buildingVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec3 aColor;

uniform mat4 uProjection;
uniform mat4 uModelView;

out vec3 vNormal;
out vec3 vColor;

void main() {
    vNormal = mat3(uModelView) * aNormal;
    vColor = aColor;
    gl_Position = uProjection * uModelView * vec4(aPos, 1.0);
}
` + "\x00"

// Building fragment shader: one directional light in eye space plus a
// flat ambient term. Lit windows are emissive and skip the light.
const buildingFragSrc = `#version 410 core

uniform vec3 uLightDir;
uniform float uAmbient;

in vec3 vNormal;
in vec3 vColor;
out vec4 FragColor;

void main() {
    float diffuse = max(dot(normalize(vNormal), normalize(uLightDir)), 0.0);
    float shade = uAmbient + (1.0 - uAmbient) * diffuse;
    bool emissive = vColor.r > 0.45 && vColor.b < 0.05;
    FragColor = vec4(emissive ? vColor : vColor * shade, 1.0);
}
` + "\x00"

// Ground vertex shader: the road plane with its texture coordinates.
const groundVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec3 aColor;
layout(location = 3) in vec2 aUV;

uniform mat4 uProjection;
uniform mat4 uModelView;

out vec3 vColor;
out vec2 vUV;

void main() {
    vColor = aColor;
    vUV = aUV;
    gl_Position = uProjection * uModelView * vec4(aPos, 1.0);
}
` + "\x00"

// Ground fragment shader: procedural streets, one pair per city unit,
// dashed centre lines on the long streets.
const groundFragSrc = `#version 410 core

in vec3 vColor;
in vec2 vUV;
out vec4 FragColor;

void main() {
    vec2 f = fract(vUV);
    bool road = f.x < 0.2 || f.y > 0.8;
    vec3 c = road ? vec3(0.08) : vColor;
    if (f.x > 0.09 && f.x < 0.11 && fract(vUV.y * 4.0) < 0.5) {
        c = vec3(0.6, 0.6, 0.4);
    }
    FragColor = vec4(c, 1.0);
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
