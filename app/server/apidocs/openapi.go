package apidocs

import (
	"content-gate/app/server/constants"
	"content-gate/app/server/models"
	"github.com/getkin/kin-openapi/openapi3"
	"net/http"
)

// Document 描述 /api 下的所有接口
func Document() *openapi3.T {
	credentials := openapi3.NewObjectSchema().
		WithProperty("login", openapi3.NewStringSchema().WithMinLength(constants.LoginMinLength).WithMaxLength(constants.LoginMaxLength)).
		WithProperty("password", openapi3.NewStringSchema().WithMinLength(constants.PasswordMinLength).WithMaxLength(constants.PasswordMaxLength))
	credentials.Required = []string{"login", "password"}

	user := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewInt64Schema()).
		WithProperty("login", openapi3.NewStringSchema()).
		WithProperty("theme", enumSchema(models.Themes)).
		WithProperty("lang", enumSchema(models.Languages))

	content := openapi3.NewObjectSchema().
		WithProperty("greeting", openapi3.NewStringSchema()).
		WithProperty("theme", enumSchema(models.Themes)).
		WithProperty("banner", openapi3.NewStringSchema()).
		WithProperty("userId", openapi3.NewInt64Schema())

	theme := openapi3.NewObjectSchema().WithProperty("theme", enumSchema(models.Themes))
	theme.Required = []string{"theme"}
	language := openapi3.NewObjectSchema().WithProperty("lang", enumSchema(models.Languages))
	language.Required = []string{"lang"}

	file := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewInt64Schema()).
		WithProperty("originalName", openapi3.NewStringSchema()).
		WithProperty("size", openapi3.NewInt64Schema()).
		WithProperty("uploadedAt", openapi3.NewDateTimeSchema())

	upload := openapi3.NewObjectSchema().
		WithProperty(constants.UploadFormField, openapi3.NewStringSchema().WithFormat("binary"))
	upload.Required = []string{constants.UploadFormField}

	allowed := func(values *openapi3.Schema) *openapi3.Schema {
		return openapi3.NewObjectSchema().WithProperty("allowed", openapi3.NewArraySchema().WithItems(values))
	}

	fileID := openapi3.Parameters{
		{Value: openapi3.NewPathParameter("id").WithSchema(openapi3.NewInt64Schema().WithMin(1))},
	}

	deleteFile := operation("pdfDelete", "Delete an own PDF file", nil, fileID, map[int]*openapi3.ResponseRef{
		http.StatusOK:           jsonResponse("Deleted", nil),
		http.StatusBadRequest:   errorResponse(http.StatusBadRequest),
		http.StatusUnauthorized: errorResponse(http.StatusUnauthorized),
		http.StatusNotFound:     errorResponse(http.StatusNotFound),
	})

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   "content-gate",
			Version: "1.0.0",
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath("/api/healthcheck", &openapi3.PathItem{
				Get: operation("healthCheck", "Liveness probe", nil, nil, map[int]*openapi3.ResponseRef{
					http.StatusOK: {Value: openapi3.NewResponse().WithDescription("Alive")},
				}),
			}),
			openapi3.WithPath("/api/register", &openapi3.PathItem{
				Post: operation("authRegister", "Create an account", jsonBody(credentials), nil, map[int]*openapi3.ResponseRef{
					http.StatusCreated:    jsonResponse("Registered", user),
					http.StatusBadRequest: errorResponse(http.StatusBadRequest),
					http.StatusConflict:   errorResponse(http.StatusConflict),
				}),
			}),
			openapi3.WithPath("/api/login", &openapi3.PathItem{
				Post: operation("authLogin", "Log in and receive the identity and preference cookies", jsonBody(credentials), nil, map[int]*openapi3.ResponseRef{
					http.StatusOK:           jsonResponse("Logged in", user),
					http.StatusBadRequest:   errorResponse(http.StatusBadRequest),
					http.StatusUnauthorized: errorResponse(http.StatusUnauthorized),
				}),
			}),
			openapi3.WithPath("/api/logout", &openapi3.PathItem{
				Post: operation("authLogout", "Clear the identity and preference cookies", nil, nil, map[int]*openapi3.ResponseRef{
					http.StatusOK: jsonResponse("Logged out", nil),
				}),
			}),
			openapi3.WithPath("/api/content", &openapi3.PathItem{
				Get: operation("contentGet", "Personalized content for the caller", nil, nil, map[int]*openapi3.ResponseRef{
					http.StatusOK: jsonResponse("Content", content),
				}),
			}),
			openapi3.WithPath("/api/theme", &openapi3.PathItem{
				Post: operation("themeSet", "Change the theme of the logged in user", jsonBody(theme), nil, map[int]*openapi3.ResponseRef{
					http.StatusOK:                  jsonResponse("Theme updated", theme),
					http.StatusUnauthorized:        errorResponse(http.StatusUnauthorized),
					http.StatusUnprocessableEntity: jsonResponse("Unknown theme", allowed(enumSchema(models.Themes))),
				}),
			}),
			openapi3.WithPath("/api/lang", &openapi3.PathItem{
				Post: operation("languageSet", "Change the language of the logged in user", jsonBody(language), nil, map[int]*openapi3.ResponseRef{
					http.StatusOK:                  jsonResponse("Language updated", language),
					http.StatusUnauthorized:        errorResponse(http.StatusUnauthorized),
					http.StatusUnprocessableEntity: jsonResponse("Unknown language", allowed(enumSchema(models.Languages))),
				}),
			}),
			openapi3.WithPath("/api/upload", &openapi3.PathItem{
				Post: operation("pdfUpload", "Upload a PDF file", &openapi3.RequestBodyRef{
					Value: openapi3.NewRequestBody().WithRequired(true).WithFormDataSchema(upload),
				}, nil, map[int]*openapi3.ResponseRef{
					http.StatusCreated:               jsonResponse("Uploaded", file),
					http.StatusBadRequest:            errorResponse(http.StatusBadRequest),
					http.StatusUnauthorized:          errorResponse(http.StatusUnauthorized),
					http.StatusRequestEntityTooLarge: errorResponse(http.StatusRequestEntityTooLarge),
				}),
			}),
			openapi3.WithPath("/api/pdf", &openapi3.PathItem{
				Get: operation("pdfList", "List own PDF files, newest first", nil, nil, map[int]*openapi3.ResponseRef{
					http.StatusOK:           jsonResponse("Files", openapi3.NewArraySchema().WithItems(file)),
					http.StatusUnauthorized: errorResponse(http.StatusUnauthorized),
				}),
			}),
			openapi3.WithPath("/api/pdf/{id}", &openapi3.PathItem{
				Get: operation("pdfDownload", "Download a PDF file", nil, fileID, map[int]*openapi3.ResponseRef{
					http.StatusOK: {Value: openapi3.NewResponse().
						WithDescription("File content").
						WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema().WithFormat("binary"), []string{constants.UploadAllowedType}))},
					http.StatusBadRequest:   errorResponse(http.StatusBadRequest),
					http.StatusUnauthorized: errorResponse(http.StatusUnauthorized),
					http.StatusNotFound:     errorResponse(http.StatusNotFound),
				}),
				Delete: deleteFile,
			}),
			openapi3.WithPath("/api/delete-pdf/{id}", &openapi3.PathItem{
				Delete: withID(deleteFile, "pdfDeleteLegacy"),
			}),
		),
	}
}

func operation(id string, summary string, body *openapi3.RequestBodyRef, params openapi3.Parameters, responses map[int]*openapi3.ResponseRef) *openapi3.Operation {
	opts := make([]openapi3.NewResponsesOption, 0, len(responses))
	for status, ref := range responses {
		opts = append(opts, openapi3.WithStatus(status, ref))
	}

	return &openapi3.Operation{
		OperationID: id,
		Summary:     summary,
		Parameters:  params,
		RequestBody: body,
		Responses:   openapi3.NewResponses(opts...),
	}
}

// withID 复制一个接口，只换 operationId
func withID(op *openapi3.Operation, id string) *openapi3.Operation {
	cp := *op
	cp.OperationID = id
	return &cp
}

func jsonBody(schema *openapi3.Schema) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(schema),
	}
}

func envelope(data *openapi3.Schema) *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("ok", openapi3.NewBoolSchema()).
		WithProperty("message", openapi3.NewStringSchema())
	if data != nil {
		s = s.WithProperty("data", data)
	}
	s.Required = []string{"ok"}
	return s
}

func jsonResponse(description string, data *openapi3.Schema) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(description).WithJSONSchema(envelope(data)),
	}
}

func errorResponse(status int) *openapi3.ResponseRef {
	return jsonResponse(http.StatusText(status), nil)
}

func enumSchema[T ~string](values []T) *openapi3.Schema {
	enum := make([]any, 0, len(values))
	for _, v := range values {
		enum = append(enum, string(v))
	}
	return openapi3.NewStringSchema().WithEnum(enum...)
}
