package util

import (
	"testing"
	"time"

	"github.com/markvl91/teammates/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	instructor := &model.Instructor{
		BaseModel: model.BaseModel{ID: 7},
		CourseID:  "CS101",
		Email:     "ida@example.com",
	}

	token, err := GenerateJWT(instructor, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.InstructorID != 7 || claims.CourseID != "CS101" || claims.Email != "ida@example.com" {
		t.Fatalf("claims round trip wrong: %+v", claims)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	instructor := &model.Instructor{CourseID: "CS101", Email: "ida@example.com"}
	token, err := GenerateJWT(instructor, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Fatalf("a token signed with another secret must not verify")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	instructor := &model.Instructor{CourseID: "CS101", Email: "ida@example.com"}
	token, err := GenerateJWT(instructor, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseJWT(token, "test-secret"); err == nil {
		t.Fatalf("an expired token must not verify")
	}
}
