package opengl

import "github.com/HugoPeters1024/deffered-shading/internal/pipeline"

// Sources maps each program of the pipeline table to its GLSL.
var Sources = map[string]ShaderSource{
	pipeline.ProgramGeometry:   {Vertex: geometryVertSrc, Fragment: geometryFragSrc},
	pipeline.ProgramCombinator: {Vertex: fullscreenVertSrc, Fragment: combinatorFragSrc},
	pipeline.ProgramCone:       {Vertex: coneVertSrc, Geometry: coneGeomSrc, Fragment: coneFragSrc},
	pipeline.ProgramComposite:  {Vertex: fullscreenVertSrc, Fragment: compositeFragSrc},
	pipeline.ProgramBlit:       {Vertex: fullscreenVertSrc, Fragment: blitFragSrc},
}

// ── Geometry pass ────────────────────────────────────────────────────────────

const geometryVertSrc = `
#version 450 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aUV;
layout(location = 3) in vec3 aTangent;
layout(location = 4) in vec3 aBitangent;

uniform mat4  camera;
uniform mat4  model;
uniform float textureScale;

out vec2 vUV;
out vec3 vNormal;
out vec3 vTangent;
out vec3 vBitangent;

void main() {
    mat3 normalMat = transpose(inverse(mat3(model)));
    vNormal    = normalMat * aNormal;
    vTangent   = mat3(model) * aTangent;
    vBitangent = mat3(model) * aBitangent;
    vUV        = aUV * textureScale;
    gl_Position = camera * model * vec4(aPos, 1.0);
}
` + "\x00"

// Normals leave range-compressed into [0,1].
const geometryFragSrc = `
#version 450 core
in vec2 vUV;
in vec3 vNormal;
in vec3 vTangent;
in vec3 vBitangent;

layout(location = 0) out vec3 gNormal;
layout(location = 1) out vec3 gMaterial;

uniform sampler2D albedoTex;
uniform sampler2D normalTex;
uniform bool      useNormalMap;

void main() {
    vec3 n = normalize(vNormal);
    if (useNormalMap) {
        vec3 t = texture(normalTex, vUV).rgb * 2.0 - 1.0;
        n = normalize(mat3(normalize(vTangent), normalize(vBitangent), n) * t);
    }
    gNormal   = n * 0.5 + 0.5;
    gMaterial = texture(albedoTex, vUV).rgb;
}
` + "\x00"

// ── Fullscreen passes ────────────────────────────────────────────────────────

// fullscreenVertSrc draws one triangle covering the screen from gl_VertexID.
const fullscreenVertSrc = `
#version 450 core
out vec2 vUV;
void main() {
    const vec2 pos[3] = vec2[3](
        vec2(-1.0, -1.0),
        vec2( 3.0, -1.0),
        vec2(-1.0,  3.0)
    );
    gl_Position = vec4(pos[gl_VertexID], 0.0, 1.0);
    vUV         = pos[gl_VertexID] * 0.5 + 0.5;
}
` + "\x00"

// combinatorFragSrc resolves the G-buffer. It follows package shading
// term for term.
const combinatorFragSrc = `
#version 450 core
in  vec2 vUV;
out vec4 fragColor;

struct Light {
    vec4 pos;
    vec4 col;
    vec4 dir;
};

layout(std140) uniform LightBlock {
    int   lightCount;
    Light lights[32];
};

uniform sampler2D gNormal;
uniform sampler2D gMaterial;
uniform sampler2D gDepth;

uniform mat4  invCamera;
uniform vec3  eye;
uniform float ambient;
uniform float shininess;
uniform float specular;
uniform vec3  mistColor;
uniform float mistAmount;
uniform float mistPower;

const float SPOT_BAND = 0.02;
const float MIN_DIST2 = 1e-4;

vec3 safeNormalize(vec3 v) {
    float l2 = dot(v, v);
    return l2 < 1e-12 ? vec3(0.0) : v * inversesqrt(l2);
}

float spotFactor(Light l, vec3 lightToFrag) {
    if (dot(l.dir.xyz, l.dir.xyz) == 0.0) {
        return 1.0;
    }
    float cosAngle = dot(lightToFrag, normalize(l.dir.xyz));
    return clamp((cosAngle - l.dir.w) / SPOT_BAND, 0.0, 1.0);
}

vec3 contribution(Light l, vec3 pos, vec3 N, vec3 albedo) {
    vec3  toLight = l.pos.xyz - pos;
    float dist2   = dot(toLight, toLight);
    float d2      = max(dist2, MIN_DIST2);
    vec3  L = toLight * inversesqrt(d2);
    vec3  V = safeNormalize(eye - pos);
    vec3  H = safeNormalize(L + V);

    float diffuse = max(dot(N, L), 0.0);
    float spec    = diffuse > 0.0 ? specular * pow(max(dot(N, H), 0.0), shininess) : 0.0;

    float scale = (1.0 / d2) * spotFactor(l, -L);
    return l.col.rgb * (albedo * diffuse + vec3(spec)) * scale;
}

void main() {
    float depth = texture(gDepth, vUV).r;
    vec3  color = vec3(0.0);

    if (depth < 1.0) {
        vec4 world = invCamera * vec4(vUV * 2.0 - 1.0, depth * 2.0 - 1.0, 1.0);
        vec3 pos    = world.xyz / world.w;
        vec3 N      = safeNormalize(texture(gNormal, vUV).rgb * 2.0 - 1.0);
        vec3 albedo = texture(gMaterial, vUV).rgb;

        color = albedo * ambient;
        for (int i = 0; i < lightCount; i++) {
            color += contribution(lights[i], pos, N, albedo);
        }
    }

    float mist = mistAmount * pow(depth, mistPower);
    fragColor = vec4(mix(color, mistColor, mist), 1.0);
}
` + "\x00"

// ── Cone pass ────────────────────────────────────────────────────────────────

const coneVertSrc = `
#version 450 core
uniform vec3 apex;
void main() {
    gl_Position = vec4(apex, 1.0);
}
` + "\x00"

// coneGeomSrc expands the apex point into a fan of 16 triangles reaching
// coneLength along the axis.
const coneGeomSrc = `
#version 450 core
layout(points) in;
layout(triangle_strip, max_vertices = 48) out;

uniform mat4  camera;
uniform vec3  axis;
uniform float cutoff;
uniform float coneLength;

out float vAlong;

const int   SUBDIVISIONS = 16;
const float TAU = 6.28318530718;

void main() {
    vec3 apex = gl_in[0].gl_Position.xyz;
    vec3 a    = normalize(axis);
    vec3 up   = abs(a.y) < 0.99 ? vec3(0.0, 1.0, 0.0) : vec3(1.0, 0.0, 0.0);
    vec3 u    = normalize(cross(a, up));
    vec3 v    = cross(a, u);

    float c      = clamp(cutoff, 1e-4, 1.0);
    float radius = coneLength * tan(acos(c));
    vec3  base   = apex + a * coneLength;

    for (int i = 0; i < SUBDIVISIONS; i++) {
        float t0 = TAU * float(i) / float(SUBDIVISIONS);
        float t1 = TAU * float(i + 1) / float(SUBDIVISIONS);

        vAlong = 0.0;
        gl_Position = camera * vec4(apex, 1.0);
        EmitVertex();
        vAlong = 1.0;
        gl_Position = camera * vec4(base + radius * (cos(t0) * u + sin(t0) * v), 1.0);
        EmitVertex();
        gl_Position = camera * vec4(base + radius * (cos(t1) * u + sin(t1) * v), 1.0);
        EmitVertex();
        EndPrimitive();
    }
}
` + "\x00"

// Fragments behind the scene are dropped by comparing with the G-buffer
// depth; shaft brightness fades quadratically away from the apex.
const coneFragSrc = `
#version 450 core
in  float vAlong;
out vec4  fragColor;

uniform sampler2D gDepth;
uniform vec3      color;
uniform vec2      screenSize;

const float SHAFT_INTENSITY = 0.0004;

void main() {
    float sceneDepth = texture(gDepth, gl_FragCoord.xy / screenSize).r;
    if (gl_FragCoord.z > sceneDepth) {
        discard;
    }
    float fade = (1.0 - vAlong) * (1.0 - vAlong);
    fragColor = vec4(color * SHAFT_INTENSITY * fade, 1.0);
}
` + "\x00"

// ── Composite and blit ───────────────────────────────────────────────────────

// compositeFragSrc blurs the lit scene over a slowly turning ring whose
// radius follows the shaft brightness, then adds the shafts.
const compositeFragSrc = `
#version 450 core
in  vec2 vUV;
out vec4 fragColor;

uniform sampler2D scene;
uniform sampler2D cone;
uniform float     blurRadius;
uniform float     time;

const vec2 RING[8] = vec2[8](
    vec2( 1.0,    0.0),    vec2( 0.7071,  0.7071),
    vec2( 0.0,    1.0),    vec2(-0.7071,  0.7071),
    vec2(-1.0,    0.0),    vec2(-0.7071, -0.7071),
    vec2( 0.0,   -1.0),    vec2( 0.7071, -0.7071)
);

void main() {
    vec3  shaft  = texture(cone, vUV).rgb;
    float lum    = dot(shaft, vec3(0.2126, 0.7152, 0.0722));
    vec2  texel  = 1.0 / vec2(textureSize(scene, 0));
    float radius = blurRadius * lum;

    float s = sin(time * 0.5);
    float c = cos(time * 0.5);
    mat2  rot = mat2(c, s, -s, c);

    vec3 acc = texture(scene, vUV).rgb;
    for (int i = 0; i < 8; i++) {
        acc += texture(scene, vUV + rot * RING[i] * radius * texel).rgb;
    }
    fragColor = vec4(acc / 9.0 + shaft, 1.0);
}
` + "\x00"

// blitFragSrc shows a texture as color (channel 0) or its red channel as
// gray (channel 1, used for depth).
const blitFragSrc = `
#version 450 core
in  vec2 vUV;
out vec4 fragColor;

uniform sampler2D source;
uniform int       channel;

void main() {
    vec4 texel = texture(source, vUV);
    if (channel == 1) {
        float d = pow(texel.r, 32.0);
        fragColor = vec4(vec3(d), 1.0);
    } else {
        fragColor = vec4(texel.rgb, 1.0);
    }
}
` + "\x00"
