package gateway

// Version hashes for the Replicate-hosted models backing each intent. The
// table is deliberately static: callers pick an intent, never a model.
const (
	modelSVDXT      = "3f0457e4619daac51203dedb472816f3e3d4c0d1f5b8247f3264786a27374a1a"
	modelRealESRGAN = "f121d640bd286e1fdc67f9799164c1d5be36ff74576ee11c803ae5b665dd46aa"
	modelGFPGAN     = "9283608cc6b7be6b65a8e44983db012355fde4132009bf99d976b2f0896856a3"
	modelLlama2Chat = "02e509c789964a7ea8736978a43525956ef40397be9033abf9fd2badfe68c9e3"
)

// DefaultVideoModelName is the public name of the image-to-video model,
// recommended whenever the director consultation cannot produce one.
const DefaultVideoModelName = "svd-xt"
