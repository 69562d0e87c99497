package renderer

// Shader source for the fullscreen visualizer pass.

// visualizerShaderSource draws a fullscreen triangle and shades it with an
// iterated orbit pattern. The iteration count, detail level, and quality
// factor uniforms are driven by the quality controller every frame, so the
// same shader scales from battery-saving mobile output to ultra desktop
// output without a pipeline rebuild.
const visualizerShaderSource = `
struct Uniforms {
    time: f32,
    quality_factor: f32,
    iteration_count: f32,
    detail_level: f32,
    resolution: vec2<f32>,
    _pad: vec2<f32>,
}

@group(0) @binding(0) var<uniform> u: Uniforms;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) index: u32) -> VertexOutput {
    // Fullscreen triangle, no vertex buffers.
    var positions = array<vec2<f32>, 3>(
        vec2<f32>(-1.0, -3.0),
        vec2<f32>(3.0, 1.0),
        vec2<f32>(-1.0, 1.0),
    );
    var out: VertexOutput;
    out.position = vec4<f32>(positions[index], 0.0, 1.0);
    return out;
}

@fragment
fn fs_main(@builtin(position) frag_coord: vec4<f32>) -> @location(0) vec4<f32> {
    let uv = (frag_coord.xy * 2.0 - u.resolution) / u.resolution.y;

    var p = uv * (1.0 + 0.25 * sin(u.time * 0.1));
    var accum = 0.0;
    let iterations = i32(u.iteration_count);
    for (var i = 0; i < iterations; i = i + 1) {
        let fi = f32(i);
        p = abs(p) / dot(p, p) - u.detail_level * 0.5;
        accum = accum + exp(-4.0 * abs(dot(p, vec2<f32>(cos(u.time * 0.2 + fi), sin(u.time * 0.2 + fi)))));
    }
    accum = accum / u.iteration_count;

    let glow = pow(accum, 1.0 / max(u.quality_factor, 0.05));
    let color = vec3<f32>(
        glow * (0.6 + 0.4 * sin(u.time * 0.3)),
        glow * (0.5 + 0.5 * sin(u.time * 0.23 + 2.0)),
        glow * (0.7 + 0.3 * sin(u.time * 0.17 + 4.0)),
    );
    return vec4<f32>(color, 1.0);
}
`
