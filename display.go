package main

import (
	"math"

	gl "github.com/go-gl/gl/v3.1/gles2"
	mgl "github.com/go-gl/mathgl/mgl32"
)

const (
	circleVertexShader = `
    precision highp float;
    attribute vec2 a_position;
    uniform mat4 u_transform;
    void main(void) {
      gl_Position = u_transform * vec4(a_position, 0.0, 1.0);
    };` + "\x00"
	circleFragmentShader = `
    precision highp float;
    uniform vec4 u_color;
    void main(void) {
      gl_FragColor = u_color;
    };` + "\x00"
)

const (
	circleSegments = 48
	circleRadius   = 40
	voiceCenterY   = 120
)

var voicePositions = map[string]float32{
	"1": 120,
	"2": 240,
	"3": 360,
	"4": 480,
}

type CircleVertex struct {
	position [2]float32
}

// VoiceDisplay draws one filled circle per voice, colored from the voice's
// entropy. It only ever reads the registry's accessors.
type VoiceDisplay struct {
	reg         *Registry
	vertices    []CircleVertex
	program     Program
	a_position  int32
	u_transform int32
	u_color     int32
}

func CreateVoiceDisplay(reg *Registry) (*VoiceDisplay, error) {
	program, err := CreateProgram(circleVertexShader, circleFragmentShader)
	if err != nil {
		return nil, err
	}
	// Unit circle as a triangle fan: center, then the rim with the first
	// point repeated to close it.
	vertices := make([]CircleVertex, circleSegments+2)
	for i := 1; i < len(vertices); i++ {
		angle := 2 * math.Pi * float64(i-1) / circleSegments
		vertices[i].position[0] = float32(math.Cos(angle))
		vertices[i].position[1] = float32(math.Sin(angle))
	}
	return &VoiceDisplay{
		reg:         reg,
		vertices:    vertices,
		program:     program,
		a_position:  program.GetAttribLocation("a_position\x00"),
		u_transform: program.GetUniformLocation("u_transform\x00"),
		u_color:     program.GetUniformLocation("u_color\x00"),
	}, nil
}

// voiceColor maps entropy onto the red/blue ramp: a held voice glows redder
// as its attractor grows more turbulent. Released voices go gray.
func voiceColor(active bool, entropy float64) (r, g, b float32) {
	if !active {
		return 0.5, 0.5, 0.5
	}
	red := float32(100+155*entropy) / 255
	return red, 0, 1 - red
}

func (vd *VoiceDisplay) Render() {
	vd.program.Use()
	gl.EnableVertexAttribArray(uint32(vd.a_position))
	gl.VertexAttribPointer(
		uint32(vd.a_position), 2, gl.FLOAT, false, 0,
		gl.Ptr(&vd.vertices[0].position[0]))
	ux := 2.0 / float32(windowWidth)
	uy := 2.0 / float32(windowHeight)
	for _, id := range voiceIDs {
		r, g, b := voiceColor(vd.reg.Active(id), vd.reg.Entropy(id))
		mScale := mgl.Scale3D(ux*circleRadius, uy*circleRadius, 1)
		tx := -1.0 + ux*voicePositions[id]
		ty := 1.0 - uy*voiceCenterY
		mTransform := mgl.Translate3D(tx, ty, 0).Mul4(mScale)
		gl.UniformMatrix4fv(vd.u_transform, 1, false, &mTransform[0])
		gl.Uniform4f(vd.u_color, r, g, b, 1)
		gl.DrawArrays(gl.TRIANGLE_FAN, 0, int32(len(vd.vertices)))
	}
	gl.DisableVertexAttribArray(uint32(vd.a_position))
}

func (vd *VoiceDisplay) Close() error {
	return vd.program.Close()
}
