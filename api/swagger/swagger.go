package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "Exam Timetable API",
    "description": "Exam scheduling, conflict auditing and the two-step approval workflow.",
    "version": "1.0.0"
  },
  "basePath": "/api/v1",
  "schemes": [
    "http"
  ],
  "securityDefinitions": {
    "BearerAuth": {
      "type": "apiKey",
      "name": "Authorization",
      "in": "header"
    }
  },
  "tags": [
    {
      "name": "Authentication"
    },
    {
      "name": "Catalog",
      "description": "Departments, formations, modules, students, professors and rooms"
    },
    {
      "name": "Exams"
    },
    {
      "name": "Approvals",
      "description": "Department head then vice dean sign-off"
    },
    {
      "name": "Timetable",
      "description": "Generation, conflict audit and personal timetables"
    },
    {
      "name": "Statistics"
    }
  ],
  "paths": {
    "/auth/login": {
      "post": {
        "tags": [
          "Authentication"
        ],
        "summary": "Authenticate user",
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {
              "$ref": "#/definitions/LoginRequest"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "401": {
            "description": "Unauthorized",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/auth/register": {
      "post": {
        "tags": [
          "Authentication"
        ],
        "summary": "Create a user account",
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {
              "$ref": "#/definitions/RegisterRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "409": {
            "description": "Conflict",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/auth/me": {
      "get": {
        "tags": [
          "Authentication"
        ],
        "summary": "Current user profile",
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "401": {
            "description": "Unauthorized",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/departments": {
      "get": {
        "tags": [
          "Catalog"
        ],
        "summary": "List departments",
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "post": {
        "tags": [
          "Catalog"
        ],
        "summary": "Create department",
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {
              "$ref": "#/definitions/CreateDepartmentRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "409": {
            "description": "Conflict",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/formations": {
      "get": {
        "tags": [
          "Catalog"
        ],
        "summary": "List formations",
        "parameters": [
          {
            "in": "query",
            "name": "departmentId",
            "type": "string",
            "description": "Parent filter"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "post": {
        "tags": [
          "Catalog"
        ],
        "summary": "Create formation",
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {
              "$ref": "#/definitions/CreateFormationRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "409": {
            "description": "Conflict",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/modules": {
      "get": {
        "tags": [
          "Catalog"
        ],
        "summary": "List modules",
        "parameters": [
          {
            "in": "query",
            "name": "formationId",
            "type": "string",
            "description": "Parent filter"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "post": {
        "tags": [
          "Catalog"
        ],
        "summary": "Create module",
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {
              "$ref": "#/definitions/CreateModuleRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "409": {
            "description": "Conflict",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/students": {
      "get": {
        "tags": [
          "Catalog"
        ],
        "summary": "List students",
        "parameters": [
          {
            "in": "query",
            "name": "formationId",
            "type": "string",
            "description": "Parent filter"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "post": {
        "tags": [
          "Catalog"
        ],
        "summary": "Create student",
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {
              "$ref": "#/definitions/CreateStudentRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "409": {
            "description": "Conflict",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/professors": {
      "get": {
        "tags": [
          "Catalog"
        ],
        "summary": "List professors",
        "parameters": [
          {
            "in": "query",
            "name": "departmentId",
            "type": "string",
            "description": "Parent filter"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "post": {
        "tags": [
          "Catalog"
        ],
        "summary": "Create professor",
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {
              "$ref": "#/definitions/CreateProfessorRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "409": {
            "description": "Conflict",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/buildings": {
      "get": {
        "tags": [
          "Catalog"
        ],
        "summary": "List buildings",
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "post": {
        "tags": [
          "Catalog"
        ],
        "summary": "Create building",
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {
              "$ref": "#/definitions/CreateBuildingRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "409": {
            "description": "Conflict",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/rooms": {
      "get": {
        "tags": [
          "Catalog"
        ],
        "summary": "List rooms",
        "parameters": [
          {
            "in": "query",
            "name": "buildingId",
            "type": "string",
            "description": "Parent filter"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "post": {
        "tags": [
          "Catalog"
        ],
        "summary": "Create room",
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {
              "$ref": "#/definitions/CreateRoomRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "409": {
            "description": "Conflict",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/modules/{id}/enrollments": {
      "post": {
        "tags": [
          "Catalog"
        ],
        "summary": "Enroll a student into a module",
        "parameters": [
          {
            "in": "path",
            "name": "id",
            "type": "string",
            "required": true
          },
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {
              "$ref": "#/definitions/EnrollStudentRequest"
            }
          }
        ],
        "responses": {
          "204": {
            "description": "No Content"
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/exams": {
      "get": {
        "tags": [
          "Exams"
        ],
        "summary": "List exams visible to the caller",
        "parameters": [
          {
            "in": "query",
            "name": "moduleId",
            "type": "string",
            "description": "Module ID"
          },
          {
            "in": "query",
            "name": "startDate",
            "type": "string",
            "description": "YYYY-MM-DD"
          },
          {
            "in": "query",
            "name": "endDate",
            "type": "string",
            "description": "YYYY-MM-DD"
          },
          {
            "in": "query",
            "name": "includePending",
            "type": "boolean",
            "description": "Department heads: include rejected exams"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "post": {
        "tags": [
          "Exams"
        ],
        "summary": "Record a hand-entered exam",
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {
              "$ref": "#/definitions/CreateExamRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/exams/{id}": {
      "get": {
        "tags": [
          "Exams"
        ],
        "summary": "Get exam",
        "parameters": [
          {
            "in": "path",
            "name": "id",
            "type": "string",
            "required": true
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      },
      "delete": {
        "tags": [
          "Exams"
        ],
        "summary": "Delete exam",
        "parameters": [
          {
            "in": "path",
            "name": "id",
            "type": "string",
            "required": true
          }
        ],
        "responses": {
          "204": {
            "description": "No Content"
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/exams/{id}/approve/dept-head": {
      "post": {
        "tags": [
          "Approvals"
        ],
        "summary": "Department head decision",
        "parameters": [
          {
            "in": "path",
            "name": "id",
            "type": "string",
            "required": true
          },
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {
              "$ref": "#/definitions/ApprovalRequest"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/exams/{id}/approve/vice-dean": {
      "post": {
        "tags": [
          "Approvals"
        ],
        "summary": "Vice dean decision",
        "parameters": [
          {
            "in": "path",
            "name": "id",
            "type": "string",
            "required": true
          },
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {
              "$ref": "#/definitions/ApprovalRequest"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "412": {
            "description": "Precondition failed",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/exams/pending/dept-head": {
      "get": {
        "tags": [
          "Approvals"
        ],
        "summary": "Exams awaiting the department head",
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/exams/pending/vice-dean": {
      "get": {
        "tags": [
          "Approvals"
        ],
        "summary": "Exams awaiting the vice dean",
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/students/{id}/timetable": {
      "get": {
        "tags": [
          "Timetable"
        ],
        "summary": "Student exam timetable",
        "parameters": [
          {
            "in": "path",
            "name": "id",
            "type": "string",
            "required": true
          },
          {
            "in": "query",
            "name": "format",
            "type": "string",
            "description": "json, csv or pdf"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "403": {
            "description": "Forbidden",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "produces": [
          "application/json",
          "text/csv",
          "application/pdf"
        ]
      }
    },
    "/professors/{id}/timetable": {
      "get": {
        "tags": [
          "Timetable"
        ],
        "summary": "Professor supervision timetable",
        "parameters": [
          {
            "in": "path",
            "name": "id",
            "type": "string",
            "required": true
          },
          {
            "in": "query",
            "name": "format",
            "type": "string",
            "description": "json, csv or pdf"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "403": {
            "description": "Forbidden",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "produces": [
          "application/json",
          "text/csv",
          "application/pdf"
        ]
      }
    },
    "/timetable/generate": {
      "post": {
        "tags": [
          "Timetable"
        ],
        "summary": "Regenerate exams over a date range",
        "parameters": [
          {
            "in": "query",
            "name": "async",
            "type": "boolean",
            "description": "Queue the run in the background"
          },
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {
              "$ref": "#/definitions/GenerateTimetableRequest"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "202": {
            "description": "Accepted",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "403": {
            "description": "Forbidden",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "description": "Deletes every exam dated in the range and rebuilds the schedule."
      }
    },
    "/timetable/runs/{id}": {
      "get": {
        "tags": [
          "Timetable"
        ],
        "summary": "Poll an asynchronous generation run",
        "parameters": [
          {
            "in": "path",
            "name": "id",
            "type": "string",
            "required": true
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    },
    "/conflicts": {
      "get": {
        "tags": [
          "Timetable"
        ],
        "summary": "Audit stored exams for rule violations",
        "parameters": [
          {
            "in": "query",
            "name": "startDate",
            "type": "string",
            "description": "YYYY-MM-DD"
          },
          {
            "in": "query",
            "name": "endDate",
            "type": "string",
            "description": "YYYY-MM-DD"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "description": "Missing bounds default to the earliest and latest stored exam dates."
      }
    },
    "/statistics": {
      "get": {
        "tags": [
          "Statistics"
        ],
        "summary": "Scheduling statistics",
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        },
        "security": [
          {
            "BearerAuth": []
          }
        ]
      }
    }
  },
  "definitions": {
    "LoginRequest": {
      "type": "object",
      "properties": {
        "username": {
          "type": "string"
        },
        "password": {
          "type": "string"
        }
      },
      "required": [
        "username",
        "password"
      ]
    },
    "RegisterRequest": {
      "type": "object",
      "properties": {
        "username": {
          "type": "string"
        },
        "password": {
          "type": "string"
        },
        "role": {
          "type": "string",
          "enum": [
            "ADMIN",
            "DEAN",
            "DEPT_HEAD",
            "PROFESSOR",
            "STUDENT"
          ]
        },
        "professor_id": {
          "type": "string"
        },
        "student_id": {
          "type": "string"
        }
      },
      "required": [
        "username",
        "password",
        "role"
      ]
    },
    "CreateDepartmentRequest": {
      "type": "object",
      "properties": {
        "name": {
          "type": "string"
        }
      },
      "required": [
        "name"
      ]
    },
    "CreateFormationRequest": {
      "type": "object",
      "properties": {
        "name": {
          "type": "string"
        },
        "departmentId": {
          "type": "string"
        },
        "level": {
          "type": "string"
        },
        "moduleCount": {
          "type": "integer"
        }
      },
      "required": [
        "name",
        "departmentId"
      ]
    },
    "CreateModuleRequest": {
      "type": "object",
      "properties": {
        "name": {
          "type": "string"
        },
        "credits": {
          "type": "integer"
        },
        "formationId": {
          "type": "string"
        }
      },
      "required": [
        "name",
        "formationId"
      ]
    },
    "CreateStudentRequest": {
      "type": "object",
      "properties": {
        "registrationNumber": {
          "type": "string"
        },
        "lastName": {
          "type": "string"
        },
        "firstName": {
          "type": "string"
        },
        "formationId": {
          "type": "string"
        },
        "promo": {
          "type": "integer"
        }
      },
      "required": [
        "registrationNumber",
        "lastName",
        "firstName",
        "formationId",
        "promo"
      ]
    },
    "CreateProfessorRequest": {
      "type": "object",
      "properties": {
        "name": {
          "type": "string"
        },
        "departmentId": {
          "type": "string"
        },
        "specialty": {
          "type": "string"
        }
      },
      "required": [
        "name",
        "departmentId"
      ]
    },
    "CreateBuildingRequest": {
      "type": "object",
      "properties": {
        "name": {
          "type": "string"
        }
      },
      "required": [
        "name"
      ]
    },
    "CreateRoomRequest": {
      "type": "object",
      "properties": {
        "name": {
          "type": "string"
        },
        "capacity": {
          "type": "integer"
        },
        "kind": {
          "type": "string"
        },
        "buildingId": {
          "type": "string"
        }
      },
      "required": [
        "name",
        "capacity",
        "kind",
        "buildingId"
      ]
    },
    "EnrollStudentRequest": {
      "type": "object",
      "properties": {
        "studentId": {
          "type": "string"
        }
      },
      "required": [
        "studentId"
      ]
    },
    "CreateExamRequest": {
      "type": "object",
      "properties": {
        "moduleId": {
          "type": "string"
        },
        "date": {
          "type": "string"
        },
        "startTime": {
          "type": "string"
        },
        "durationMinutes": {
          "type": "integer"
        },
        "roomIds": {
          "type": "array",
          "items": {
            "type": "string"
          }
        },
        "professorIds": {
          "type": "array",
          "items": {
            "type": "string"
          }
        }
      },
      "required": [
        "moduleId",
        "date",
        "startTime"
      ]
    },
    "ApprovalRequest": {
      "type": "object",
      "properties": {
        "approved": {
          "type": "boolean"
        }
      },
      "required": [
        "approved"
      ]
    },
    "GenerateTimetableRequest": {
      "type": "object",
      "properties": {
        "startDate": {
          "type": "string"
        },
        "endDate": {
          "type": "string"
        },
        "examStartTime": {
          "type": "string"
        },
        "examEndTime": {
          "type": "string"
        }
      },
      "required": [
        "startDate",
        "endDate"
      ]
    },
    "APIError": {
      "type": "object",
      "properties": {
        "code": {
          "type": "string"
        },
        "message": {
          "type": "string"
        },
        "status": {
          "type": "integer"
        }
      }
    },
    "ResponseEnvelope": {
      "type": "object",
      "properties": {
        "data": {
          "type": "object"
        },
        "error": {
          "$ref": "#/definitions/APIError"
        },
        "meta": {
          "type": "object"
        }
      }
    }
  }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
