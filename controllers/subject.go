package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/tutor-booking/services"
	"github.com/meinhoongagan/tutor-booking/utils"
	"go.uber.org/zap"
)

type SubjectController struct {
	catalog  *services.CatalogService
	uploader utils.ImageUploader
	logger   *zap.Logger
}

// NewSubjectController wires the catalog. uploader may be nil when image
// uploads are not configured.
func NewSubjectController(catalog *services.CatalogService, uploader utils.ImageUploader, logger *zap.Logger) *SubjectController {
	return &SubjectController{catalog: catalog, uploader: uploader, logger: logger}
}

func (s *SubjectController) List(c *fiber.Ctx) error {
	subjects, err := s.catalog.ListSubjects(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(subjects)
}

func (s *SubjectController) Get(c *fiber.Ctx) error {
	subject, err := s.catalog.GetSubject(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(subject)
}

func (s *SubjectController) Create(c *fiber.Ctx) error {
	var input services.SubjectInput
	if err := c.BodyParser(&input); err != nil {
		return errBadBody
	}
	subject, err := s.catalog.CreateSubject(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.JSON(subject)
}

func (s *SubjectController) Update(c *fiber.Ctx) error {
	var input services.SubjectInput
	if err := c.BodyParser(&input); err != nil {
		return errBadBody
	}
	subject, err := s.catalog.UpdateSubject(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(subject)
}

func (s *SubjectController) Delete(c *fiber.Ctx) error {
	if err := s.catalog.DeleteSubject(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(utils.MessageResponse{Message: "Subject deleted successfully"})
}

// UploadImage stores the multipart "image" field and saves its URL on the subject.
func (s *SubjectController) UploadImage(c *fiber.Ctx) error {
	if s.uploader == nil {
		return utils.ErrUploadsDisabled
	}

	id := c.Params("id")
	if _, err := s.catalog.GetSubject(c.UserContext(), id); err != nil {
		return err
	}

	header, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Image file is required")
	}
	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	url, err := s.uploader.Upload(c.UserContext(), file, "subject_"+id)
	if err != nil {
		return err
	}
	s.logger.Info("Subject image uploaded", zap.String("subject_id", id))

	subject, err := s.catalog.SetSubjectImage(c.UserContext(), id, url)
	if err != nil {
		return err
	}
	return c.JSON(subject)
}

func (s *SubjectController) AddTeacher(c *fiber.Ctx) error {
	var input services.TeacherInput
	if err := c.BodyParser(&input); err != nil {
		return errBadBody
	}
	teacher, err := s.catalog.AddTeacher(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(teacher)
}

func (s *SubjectController) RemoveTeacher(c *fiber.Ctx) error {
	if err := s.catalog.RemoveTeacher(c.UserContext(), c.Params("id"), c.Params("teacherId")); err != nil {
		return err
	}
	return c.JSON(utils.MessageResponse{Message: "Teacher removed successfully"})
}
