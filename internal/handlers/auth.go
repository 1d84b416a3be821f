package handlers

import (
	"net/http"

	"yatube/internal/errs"
	"yatube/internal/middleware"
	"yatube/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *services.Services
}

func NewAuthHandler(svc *services.Services) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	Render(c, http.StatusOK, "auth/signup.html", gin.H{
		"Title": "Sign up",
		"Form":  services.SignupInput{},
	})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	in := services.SignupInput{
		Username:  c.PostForm("username"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
	}

	user, err := h.svc.Users.Register(c.Request.Context(), in)
	if errs.ErrorCode(err) == errs.EINVALID {
		in.Password = ""
		Render(c, http.StatusOK, "auth/signup.html", gin.H{
			"Title":     "Sign up",
			"Form":      in,
			"Errors":    errs.FieldErrors(err),
			"FormError": errs.ErrorMessage(err),
		})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}

	// 注册成功后自动登录
	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{
		"Title": "Log in",
		"Next":  c.Query("next"),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := c.PostForm("next")

	user, err := h.svc.Users.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		Render(c, http.StatusOK, "auth/login.html", gin.H{
			"Title":    "Log in",
			"Error":    errs.ErrorMessage(err),
			"Username": username,
			"Next":     next,
		})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, user.ID)
	session.Save()

	c.Redirect(http.StatusFound, safeNext(next, "/"))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}
