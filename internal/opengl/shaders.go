package opengl

const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

uniform mat4 mvp;
uniform mat4 model;
uniform mat4 lightViewProj;

out vec3 fragNormal;
out vec2 fragUV;
out vec3 fragWorldPos;
out vec4 fragLightSpacePos;

void main() {
    vec4 worldPos = model * vec4(inPosition, 1.0);
    // Inverse transpose keeps normals perpendicular under non-uniform scale.
    fragNormal        = transpose(inverse(mat3(model))) * inNormal;
    fragUV            = inUV;
    fragWorldPos      = worldPos.xyz;
    fragLightSpacePos = lightViewProj * worldPos;
    gl_Position       = mvp * vec4(inPosition, 1.0);
}
` + "\x00"

// Metallic-roughness Cook-Torrance with one sun, point lights, flat
// ambient and emission. Output is linear; the sRGB framebuffer encodes it.
const fragSrc = `
#version 410 core
in vec3 fragNormal;
in vec2 fragUV;
in vec3 fragWorldPos;
in vec4 fragLightSpacePos;

out vec4 outColor;

uniform vec3  sunDir;
uniform vec3  sunColor;
uniform float sunRadiance;
uniform bool  hasSun;
uniform vec3  ambientColor;

#define MAX_POINT_LIGHTS 8
uniform int   pointLightCount;
uniform vec3  pointLightPos[MAX_POINT_LIGHTS];
uniform vec3  pointLightColor[MAX_POINT_LIGHTS];
uniform float pointLightRadiance[MAX_POINT_LIGHTS];
uniform float pointLightRange[MAX_POINT_LIGHTS];

uniform vec3 cameraPos;

uniform vec4  matBaseColor;
uniform float matMetallic;
uniform float matRoughness;
uniform float matReflectance;
uniform vec3  matEmissive;

uniform sampler2D baseColorTex;
uniform bool      hasTexture;

uniform sampler2DShadow shadowMap;
uniform bool            hasShadows;
uniform float           shadowTexel;

const float PI = 3.14159265359;

float calcShadow() {
    vec3 p = fragLightSpacePos.xyz / fragLightSpacePos.w;
    p = p * 0.5 + 0.5;
    if (p.z > 1.0) return 1.0;
    float shadow = 0.0;
    for (int x = -1; x <= 1; x++) {
        for (int y = -1; y <= 1; y++) {
            shadow += texture(shadowMap, vec3(p.xy + vec2(float(x), float(y)) * shadowTexel, p.z - 0.002));
        }
    }
    return shadow / 9.0;
}

float DistributionGGX(float NdH, float roughness) {
    float a  = roughness * roughness;
    float a2 = a * a;
    float d  = NdH * NdH * (a2 - 1.0) + 1.0;
    return a2 / (PI * d * d);
}

float GeometrySchlickGGX(float cosTheta, float roughness) {
    float r = roughness + 1.0;
    float k = (r * r) / 8.0;
    return cosTheta / (cosTheta * (1.0 - k) + k);
}

vec3 FresnelSchlick(float cosTheta, vec3 F0) {
    return F0 + (1.0 - F0) * pow(clamp(1.0 - cosTheta, 0.0, 1.0), 5.0);
}

vec3 evalPBR(vec3 N, vec3 V, vec3 L, vec3 rad, vec3 albedo, float metallic, float roughness, vec3 F0) {
    float NdL = max(dot(N, L), 0.0);
    if (NdL <= 0.0) return vec3(0.0);

    vec3  H   = normalize(V + L);
    float NdV = max(dot(N, V), 0.0);

    float D = DistributionGGX(max(dot(N, H), 0.0), roughness);
    float G = GeometrySchlickGGX(NdV, roughness) * GeometrySchlickGGX(NdL, roughness);
    vec3  F = FresnelSchlick(max(dot(H, V), 0.0), F0);

    vec3 kD       = (vec3(1.0) - F) * (1.0 - metallic);
    vec3 specular = D * G * F / max(4.0 * NdV * NdL, 0.001);
    return (kD * albedo / PI + specular) * rad * NdL;
}

void main() {
    vec3 N = normalize(fragNormal);
    vec3 V = normalize(cameraPos - fragWorldPos);

    vec4 base = matBaseColor;
    if (hasTexture) {
        base *= texture(baseColorTex, fragUV);
    }

    float metallic  = matMetallic;
    float roughness = clamp(matRoughness, 0.04, 1.0);
    vec3  albedo    = base.rgb;
    vec3  F0        = mix(vec3(0.16 * matReflectance * matReflectance), albedo, metallic);

    vec3 color = ambientColor * albedo * (1.0 - metallic * 0.5);

    if (hasSun) {
        float shadow = hasShadows ? calcShadow() : 1.0;
        vec3 rad = sunColor * sunRadiance * shadow;
        color += evalPBR(N, V, normalize(-sunDir), rad, albedo, metallic, roughness, F0);
    }

    for (int i = 0; i < pointLightCount && i < MAX_POINT_LIGHTS; i++) {
        vec3  toLight = pointLightPos[i] - fragWorldPos;
        float dist    = length(toLight);
        float range   = max(pointLightRange[i], 0.001);
        float window  = clamp(1.0 - pow(dist / range, 4.0), 0.0, 1.0);
        float atten   = window * window / max(dist * dist, 0.0001);
        vec3  rad     = pointLightColor[i] * pointLightRadiance[i] * atten;
        color += evalPBR(N, V, normalize(toLight), rad, albedo, metallic, roughness, F0);
    }

    color += matEmissive;
    outColor = vec4(color, base.a);
}
` + "\x00"

const depthVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
uniform mat4 lightMVP;
void main() {
    gl_Position = lightMVP * vec4(inPosition, 1.0);
}
` + "\x00"

const depthFragSrc = `
#version 410 core
void main() {}
` + "\x00"
