package upload

import "github.com/danielgtaylor/huma/v2"

type imageForm struct {
	Image huma.FormFile `form:"image" doc:"Image file, at most UPLOAD_MAX_BYTES"`
}

type uploadInput struct {
	RawBody huma.MultipartFormFiles[imageForm]
}

type uploadOutput struct {
	Body UploadResponse
}

type UploadResponse struct {
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl" example:"/uploads/1700000000000-3f2b.png"`
}
